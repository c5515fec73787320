// internal/link/port.go
package link

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is the byte-stream transport handle. Each side of the link owns its
// port exclusively; no shared transport state crosses components.
//
// ReadAvailable returns promptly with whatever bytes are buffered and
// (0, nil) when nothing is available. It never blocks the caller's loop.
type Port interface {
	ReadAvailable(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// probeTimeout bounds how long a ReadAvailable probe may wait on an
// idle serial line before reporting no data.
const probeTimeout = 5 * time.Millisecond

type serialPort struct {
	p *serial.Port
}

// OpenSerial opens the serial device once. The underlying read timeout is
// kept short so ReadAvailable behaves as a probe rather than a blocking
// read.
func OpenSerial(device string, baud int) (Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: probeTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &serialPort{p: p}, nil
}

func (s *serialPort) ReadAvailable(p []byte) (int, error) {
	n, err := s.p.Read(p)
	if err == io.EOF {
		// Timeout with no data pending, not a transport fault.
		return n, nil
	}
	return n, err
}

func (s *serialPort) Write(p []byte) (int, error) {
	return s.p.Write(p)
}

func (s *serialPort) Close() error {
	return s.p.Close()
}
