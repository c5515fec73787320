// cmd/camerabot/producer.go
package main

import "math"

// Producer supplies one positional error sample per vision cycle.
// ok=false means "no target detected" and suppresses the send for that
// cycle. The camera/face-detection stack implements this on real setups.
type Producer interface {
	Next() (errX, errY int, ok bool)
}

// sweepProducer fakes a face orbiting the frame center so the full link
// and actuator path can run without a camera stack.
type sweepProducer struct {
	w, h  int
	theta float64
}

func newSweepProducer(w, h int) *sweepProducer {
	return &sweepProducer{w: w, h: h}
}

func (p *sweepProducer) Next() (int, int, bool) {
	p.theta += 0.02
	x := int(float64(p.w) / 4 * math.Cos(p.theta))
	y := int(float64(p.h) / 4 * math.Sin(p.theta))
	return x, y, true
}
