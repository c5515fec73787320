// internal/actuator/rig.go
package actuator

import (
	"math"
	"time"
)

// Eye-to-neck mapping. The horizontal mapping widens eye travel onto the
// base; the vertical mapping compresses it.
const (
	neckXMap = 1.25
	neckYMap = 0.6

	// lidOffset biases the two lids apart so they never meet mid-travel.
	lidOffset = 10
)

// Specs names every servo in the rig.
type Specs struct {
	EyeLR Spec
	EyeUD Spec
	LidTL Spec
	LidTR Spec
	BaseX Spec
	BaseY Spec
}

// DefaultSpecs is the stock animatronic head wiring.
func DefaultSpecs() Specs {
	return Specs{
		EyeLR: Spec{Pin: 10, Min: 40, Max: 140, Default: 90},
		EyeUD: Spec{Pin: 11, Min: 40, Max: 140, Default: 90},
		LidTL: Spec{Pin: 12, Min: 90, Max: 170, Default: 90},
		LidTR: Spec{Pin: 14, Min: 90, Max: 10, Default: 90},
		BaseX: Spec{Pin: 13, Min: 10, Max: 170, Default: 90},
		BaseY: Spec{Pin: 15, Min: 40, Max: 140, Default: 90},
	}
}

// Rig is the six-servo actuator set: two eye axes, two eyelids, two neck
// axes. Neck positions are tracked as floats rig-side so sub-degree steps
// accumulate instead of rounding away at high cycle rates.
type Rig struct {
	EyeLR *Servo
	EyeUD *Servo
	LidTL *Servo
	LidTR *Servo
	BaseX *Servo
	BaseY *Servo

	neckRate float64 // degrees per second

	bxTarget int
	byTarget int
	bxPos    float64
	byPos    float64
	lastMove time.Time
}

func NewRig(specs Specs, drivers DriverFactory, neckRate float64) *Rig {
	build := func(spec Spec) *Servo {
		return NewServo(spec, drivers(spec.Pin))
	}
	r := &Rig{
		EyeLR:    build(specs.EyeLR),
		EyeUD:    build(specs.EyeUD),
		LidTL:    build(specs.LidTL),
		LidTR:    build(specs.LidTR),
		BaseX:    build(specs.BaseX),
		BaseY:    build(specs.BaseY),
		neckRate: neckRate,
	}
	r.bxTarget = r.BaseX.Default
	r.byTarget = r.BaseY.Default
	r.bxPos = float64(r.BaseX.Default)
	r.byPos = float64(r.BaseY.Default)
	return r
}

func (r *Rig) all() []*Servo {
	return []*Servo{r.EyeLR, r.EyeUD, r.LidTL, r.LidTR, r.BaseX, r.BaseY}
}

// CalibrateAll re-centers every servo to its default.
func (r *Rig) CalibrateAll() {
	for _, s := range r.all() {
		_ = s.Calibrate()
	}
}

// RelaxAll de-energizes every servo. Errors on individual servos do not
// stop the sweep; limp as many as possible.
func (r *Rig) RelaxAll() {
	for _, s := range r.all() {
		_ = s.Relax()
	}
}

// MoveEyes applies proportional eye motion. The horizontal error is negated
// to match the physical mounting: positive host-side X error drives the LR
// servo toward its low end. The vertical axis is not negated.
func (r *Rig) MoveEyes(xErr, yErr int, kp float64, deadzone int) {
	r.EyeLR.MoveToTarget(-xErr, kp, deadzone)
	r.EyeUD.MoveToTarget(yErr, kp, deadzone)
}

// Blink drives both eyelids to their closed extreme. On this rig the lid
// defaults are the closed ends of their travel.
func (r *Rig) Blink() {
	_ = r.LidTL.Write(r.LidTL.Default)
	_ = r.LidTR.Write(r.LidTR.Default)
}

// LidSync recomputes both eyelid targets from the vertical eye position so
// the lids follow the gaze: lids close as the eye looks down. The raw
// (direction-preserving) Min/Max of each lid feed the interpolation; the
// fixed offset is applied in opposite directions for the two lids.
func (r *Rig) LidSync() {
	lo, hi := r.EyeUD.Bounds()
	pos := float64(r.EyeUD.Target()-lo) / float64(hi-lo)

	tl := int(float64(r.LidTL.Max)-float64(r.LidTL.Max-r.LidTL.Min)*0.5*(1-pos)) - lidOffset
	tr := int(float64(r.LidTR.Min)+float64(r.LidTR.Max-r.LidTR.Min)*0.5*(1-pos)) + lidOffset

	_ = r.LidTL.Write(tl)
	_ = r.LidTR.Write(tr)
}

// EyesOffCenter reports whether either eye servo has wandered at least
// deadzone degrees from its default.
func (r *Rig) EyesOffCenter(deadzone int) bool {
	return abs(r.EyeUD.Target()-r.EyeUD.Default) >= deadzone ||
		abs(r.EyeLR.Target()-r.EyeLR.Default) >= deadzone
}

// RetargetNeck recomputes where the neck should settle from the current eye
// targets. It only sets the goal; NeckSmoothMove approaches it.
func (r *Rig) RetargetNeck() {
	r.bxTarget = int(float64(r.EyeLR.Target()) * neckXMap)
	r.byTarget = int(float64(r.BaseY.Default) -
		float64(r.EyeUD.Default-r.EyeUD.Target())*neckYMap)
}

// NeckTarget returns the current neck goal (horizontal, vertical).
func (r *Rig) NeckTarget() (int, int) {
	return r.bxTarget, r.byTarget
}

// NeckSmoothMove advances both neck servos toward their targets by at most
// rate x elapsed degrees, snapping exactly onto the target once within one
// step's distance. The first call only records the clock.
func (r *Rig) NeckSmoothMove(now time.Time) {
	// The float cache is authoritative only while it matches the last angle
	// actually driven. Any other write to the base servos (hold-mode
	// recentering, clamping at the travel limits) moves the real position,
	// and the cache follows the servo, never the other way around.
	if int(math.Round(r.bxPos)) != r.BaseX.Target() {
		r.bxPos = float64(r.BaseX.Target())
	}
	if int(math.Round(r.byPos)) != r.BaseY.Target() {
		r.byPos = float64(r.BaseY.Target())
	}

	if r.lastMove.IsZero() {
		r.lastMove = now
		return
	}
	dt := now.Sub(r.lastMove).Seconds()
	r.lastMove = now
	if dt <= 0 {
		return
	}

	step := r.neckRate * dt
	r.bxPos = approach(r.bxPos, float64(r.bxTarget), step)
	r.byPos = approach(r.byPos, float64(r.byTarget), step)

	_ = r.BaseX.Write(int(math.Round(r.bxPos)))
	_ = r.BaseY.Write(int(math.Round(r.byPos)))
}

func approach(pos, target, step float64) float64 {
	d := target - pos
	if math.Abs(d) <= step {
		return target
	}
	if d > 0 {
		return pos + step
	}
	return pos - step
}
