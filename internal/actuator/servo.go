// internal/actuator/servo.go
package actuator

// Driver turns a logical angle into a physical drive signal. One driver per
// servo pin. Implementations: PWM hardware in firmware builds, Discard for
// host simulation, recording fakes in tests.
type Driver interface {
	SetPulseWidth(us int) error
	Release() error
}

// Pulse mapping covers the full logical angle range regardless of any
// individual servo's clamp range.
const (
	minPulseUS = 500
	maxPulseUS = 2500
	angleSpan  = 180
)

// Spec describes one servo's wiring and travel. Min and Max may be given in
// either order; direction carries meaning for some linkages (the right
// eyelid runs reversed), so the raw order is preserved and only normalized
// when clamping.
type Spec struct {
	Pin     int
	Min     int
	Max     int
	Default int
}

// Servo holds one servo's bounds, default and current target. Target is
// mutated only through Write.
type Servo struct {
	Spec
	target int
	drv    Driver
}

func NewServo(spec Spec, drv Driver) *Servo {
	return &Servo{Spec: spec, target: spec.Default, drv: drv}
}

func (s *Servo) Target() int { return s.target }

// Bounds returns the travel limits normalized so lo <= hi.
func (s *Servo) Bounds() (lo, hi int) {
	lo, hi = s.Min, s.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// Write clamps angle into bounds, stores it as the new target and drives
// the servo.
func (s *Servo) Write(angle int) error {
	lo, hi := s.Bounds()
	if angle < lo {
		angle = lo
	}
	if angle > hi {
		angle = hi
	}
	s.target = angle

	us := minPulseUS + angle*(maxPulseUS-minPulseUS)/angleSpan
	return s.drv.SetPulseWidth(us)
}

// Calibrate moves the servo to its default position.
func (s *Servo) Calibrate() error {
	return s.Write(s.Default)
}

// Relax de-energizes the drive signal so the servo goes limp. The target is
// left untouched.
func (s *Servo) Relax() error {
	return s.drv.Release()
}

// MoveToTarget applies one proportional step. Errors within the deadzone
// produce no movement. Outside it, the deadzone magnitude is subtracted in
// the error's direction so motion starts from zero at the boundary, and a
// truncated-to-zero step is forced to one unit so control never stalls just
// outside the deadzone.
func (s *Servo) MoveToTarget(err int, kp float64, deadzone int) bool {
	if abs(err) <= deadzone {
		return false
	}

	adj := err - deadzone
	if err < 0 {
		adj = err + deadzone
	}

	step := int(kp * float64(adj))
	if step == 0 {
		if adj > 0 {
			step = 1
		} else {
			step = -1
		}
	}

	_ = s.Write(s.target + step)
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
