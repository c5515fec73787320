// internal/controller/loop.go
package controller

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/Smengerl/Camera-Follower-Bot/internal/actuator"
	"github.com/Smengerl/Camera-Follower-Bot/internal/devlog"
	"github.com/Smengerl/Camera-Follower-Bot/internal/protocol"
)

// CommandSource yields the most recent decoded wire command without
// blocking. The input reader satisfies it.
type CommandSource interface {
	ReadLatest() protocol.Command
}

// Tuning is the loop's motion and timing configuration.
type Tuning struct {
	KP           float64
	EyeDeadzone  int
	NeckDeadzone int
	NeckDelay    time.Duration
	BlinkMinWait time.Duration
	BlinkMaxWait time.Duration
	BlinkHold    time.Duration
	CycleTime    time.Duration
	HoldSleep    time.Duration
	IdleSleep    time.Duration
}

// DefaultTuning matches the stock rig.
func DefaultTuning() Tuning {
	return Tuning{
		KP:           0.03,
		EyeDeadzone:  25,
		NeckDeadzone: 20,
		NeckDelay:    1200 * time.Millisecond,
		BlinkMinWait: 2 * time.Second,
		BlinkMaxWait: 8 * time.Second,
		BlinkHold:    60 * time.Millisecond,
		CycleTime:    10 * time.Millisecond,
		HoldSleep:    500 * time.Millisecond,
		IdleSleep:    50 * time.Millisecond,
	}
}

// Loop is the device-side real-time state machine. Single-threaded and
// cooperative: it suspends only at explicit bounded sleeps, and every exit
// path de-energizes the rig.
type Loop struct {
	tun Tuning
	hw  Hardware
	rig *actuator.Rig
	in  CommandSource
	out io.Writer
	log *devlog.Logger

	rand  *rand.Rand
	now   func() time.Time
	sleep func(time.Duration)

	nextBlink   time.Time
	neckArmed   bool
	neckArmedAt time.Time
}

func New(tun Tuning, hw Hardware, rig *actuator.Rig, in CommandSource, out io.Writer, log *devlog.Logger) (*Loop, error) {
	if tun.CycleTime <= 0 {
		return nil, errors.New("controller: cycle time must be > 0")
	}
	if tun.BlinkMinWait > tun.BlinkMaxWait {
		return nil, errors.New("controller: blink min wait exceeds max wait")
	}
	if rig == nil || hw == nil || in == nil {
		return nil, errors.New("controller: rig, hardware and input are required")
	}
	return &Loop{
		tun:   tun,
		hw:    hw,
		rig:   rig,
		in:    in,
		out:   out,
		log:   log,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		sleep: time.Sleep,
	}, nil
}

// Run drives the state machine until a relax command arrives or the context
// is canceled. The rig is relaxed on every exit path, panics included.
func (l *Loop) Run(ctx context.Context) error {
	defer l.rig.RelaxAll()

	l.log.Infof("follower ready")
	l.nextBlink = l.now().Add(l.blinkWait())

	for {
		select {
		case <-ctx.Done():
			l.log.Infof("interrupted, relaxing servos")
			return ctx.Err()
		default:
		}

		switch l.hw.Mode() {
		case ModeHold:
			// Hold-to-center doubles as calibration and the safe idle.
			l.rig.CalibrateAll()
			l.sleep(l.tun.HoldSleep)

		case ModeAuto:
			if !l.hw.Enabled() {
				l.sleep(l.tun.IdleSleep)
				continue
			}
			if stop := l.autoCycle(); stop {
				return nil
			}
		}
	}
}

// autoCycle runs one Auto iteration: decode, move, blink, lid sync, neck,
// pace. Returns true when a relax command ends the run.
func (l *Loop) autoCycle() bool {
	start := l.now()

	switch cmd := l.in.ReadLatest(); cmd.Kind {
	case protocol.KindRelax:
		// Servos go limp before the ack leaves the device; the deferred
		// RelaxAll in Run stays as the backstop for the other exit paths.
		l.rig.RelaxAll()
		l.ackRelax()
		return true
	case protocol.KindPosition:
		l.rig.MoveEyes(cmd.X, cmd.Y, l.tun.KP, l.tun.EyeDeadzone)
	}

	if !l.now().Before(l.nextBlink) {
		l.rig.Blink()
		l.sleep(l.tun.BlinkHold)
		l.nextBlink = l.now().Add(l.blinkWait())
	}

	// Lid sync runs every cycle so it resumes right after a blink.
	l.rig.LidSync()

	// The arming delay decouples "eye looked away" from "neck commits",
	// so momentary eye motion never jerks the neck.
	if l.rig.EyesOffCenter(l.tun.NeckDeadzone) {
		if !l.neckArmed {
			l.neckArmed = true
			l.neckArmedAt = l.now()
		} else if l.now().Sub(l.neckArmedAt) >= l.tun.NeckDelay {
			l.rig.RetargetNeck()
			l.neckArmed = false
		}
	}
	l.rig.NeckSmoothMove(l.now())

	if rem := l.tun.CycleTime - l.now().Sub(start); rem > 0 {
		l.sleep(rem)
	}
	return false
}

// blinkWait draws the next blink delay uniformly between the configured
// bounds. A single pending timer keeps blinks irregular and unstacked.
func (l *Loop) blinkWait() time.Duration {
	span := l.tun.BlinkMaxWait - l.tun.BlinkMinWait
	if span <= 0 {
		return l.tun.BlinkMinWait
	}
	return l.tun.BlinkMinWait + time.Duration(l.rand.Int63n(int64(span)))
}

func (l *Loop) ackRelax() {
	l.log.Infof("relax requested")
	if l.out != nil {
		io.WriteString(l.out, protocol.RelaxAck+"\n")
	}
}
