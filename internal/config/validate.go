// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	f := cfg.Follower

	// ------------------------------------------------------------
	// LINK
	// ------------------------------------------------------------

	if !f.Link.NoSerial && f.Link.Device == "" {
		return fmt.Errorf("link: device path required unless no_serial is set")
	}
	if f.Link.Baud < 0 {
		return fmt.Errorf("link: baud must be >= 0")
	}
	if f.Link.MinBackoffMs < 0 || f.Link.MaxBackoffMs < 0 {
		return fmt.Errorf("link: backoff values must be >= 0")
	}
	if f.Link.MaxBackoffMs > 0 && f.Link.MinBackoffMs > f.Link.MaxBackoffMs {
		return fmt.Errorf(
			"link: min_backoff_ms %d exceeds max_backoff_ms %d",
			f.Link.MinBackoffMs, f.Link.MaxBackoffMs,
		)
	}

	// ------------------------------------------------------------
	// CONTROL
	// ------------------------------------------------------------

	if f.Control.KP < 0 {
		return fmt.Errorf("control: kp must be >= 0")
	}
	if f.Control.EyeDeadzone < 0 || f.Control.NeckDeadzone < 0 {
		return fmt.Errorf("control: deadzones must be >= 0")
	}
	if f.Control.NeckRateDegS < 0 {
		return fmt.Errorf("control: neck_rate_deg_s must be >= 0")
	}
	if f.Control.BlinkMaxWaitMs > 0 &&
		f.Control.BlinkMinWaitMs > f.Control.BlinkMaxWaitMs {
		return fmt.Errorf(
			"control: blink_min_wait_ms %d exceeds blink_max_wait_ms %d",
			f.Control.BlinkMinWaitMs, f.Control.BlinkMaxWaitMs,
		)
	}

	// ------------------------------------------------------------
	// SERVO GEOMETRY
	// ------------------------------------------------------------

	if len(f.Servos) == 0 {
		return nil // the stock rig is substituted during Normalize
	}

	names := make(map[string]bool)
	pins := make(map[int]string)

	for _, s := range f.Servos {
		if s.Name == "" {
			return fmt.Errorf("servo on pin %d: name required", s.Pin)
		}
		if names[s.Name] {
			return fmt.Errorf("servo %q: duplicate name", s.Name)
		}
		names[s.Name] = true

		if prev, taken := pins[s.Pin]; taken {
			return fmt.Errorf(
				"servo %q: pin %d already used by %q", s.Name, s.Pin, prev,
			)
		}
		pins[s.Pin] = s.Name

		if s.Min == s.Max {
			return fmt.Errorf("servo %q: zero-width travel %d..%d", s.Name, s.Min, s.Max)
		}

		lo, hi := s.Min, s.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		if s.Default < lo || s.Default > hi {
			return fmt.Errorf(
				"servo %q: default %d outside travel %d..%d",
				s.Name, s.Default, lo, hi,
			)
		}
	}

	for _, want := range RequiredServos() {
		if !names[want] {
			return fmt.Errorf("servo %q: missing from config", want)
		}
	}

	return nil
}
