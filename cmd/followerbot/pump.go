// cmd/followerbot/pump.go
package main

import "io"

// pumpSource adapts a blocking reader (stdin) into the non-blocking
// ReadAvailable contract the input reader expects. One goroutine feeds a
// buffered channel; the control loop itself stays single-threaded.
type pumpSource struct {
	ch  chan []byte
	buf []byte
}

func newPumpSource(r io.Reader) *pumpSource {
	p := &pumpSource{ch: make(chan []byte, 64)}
	go func() {
		for {
			chunk := make([]byte, 256)
			n, err := r.Read(chunk)
			if n > 0 {
				p.ch <- chunk[:n]
			}
			if err != nil {
				close(p.ch)
				return
			}
		}
	}()
	return p
}

func (p *pumpSource) ReadAvailable(b []byte) (int, error) {
	if len(p.buf) == 0 {
		select {
		case chunk, ok := <-p.ch:
			if !ok {
				// Closed stdin means no producer; report quiet, not fault.
				return 0, nil
			}
			p.buf = chunk
		default:
			return 0, nil
		}
	}
	n := copy(b, p.buf)
	p.buf = p.buf[n:]
	return n, nil
}
