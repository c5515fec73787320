// internal/input/reader.go
package input

import (
	"github.com/Smengerl/Camera-Follower-Bot/internal/protocol"
)

// Source is the non-blocking byte source the reader drains. A serial port
// handle satisfies it; tests use an in-memory queue.
type Source interface {
	ReadAvailable(p []byte) (int, error)
}

// Reader drains the inbound buffer and keeps only the most recently
// completed line. Older samples are discarded on purpose: the control loop
// only ever wants the latest target, and must never fall behind a producer
// running at a different rate.
type Reader struct {
	src     Source
	partial []byte
}

func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// ReadLatest drains all currently available bytes, carries an unterminated
// fragment over to the next call, and decodes the last line completed
// during this drain. Returns Invalid when no line completed.
func (r *Reader) ReadLatest() protocol.Command {
	var latest []byte
	have := false

	chunk := make([]byte, 256)
	for {
		n, err := r.src.ReadAvailable(chunk)
		for _, b := range chunk[:n] {
			if b == '\n' {
				latest = append(latest[:0], r.partial...)
				have = true
				r.partial = r.partial[:0]
				continue
			}
			r.partial = append(r.partial, b)
		}
		if err != nil || n == 0 {
			break
		}
	}

	if !have {
		return protocol.Invalid()
	}
	return protocol.DecodeLine(string(latest))
}
