// internal/config/normalize.go
package config

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	def := Default().Follower
	f := &cfg.Follower

	// ------------------------------------------------------------
	// FILL OMITTED LINK FIELDS
	// ------------------------------------------------------------

	if f.Link.Baud == 0 {
		f.Link.Baud = def.Link.Baud
	}
	if f.Link.TimeoutMs == 0 {
		f.Link.TimeoutMs = def.Link.TimeoutMs
	}
	if f.Link.MinBackoffMs == 0 {
		f.Link.MinBackoffMs = def.Link.MinBackoffMs
	}
	if f.Link.MaxBackoffMs == 0 {
		f.Link.MaxBackoffMs = def.Link.MaxBackoffMs
	}
	if f.Link.SettleMs == 0 {
		f.Link.SettleMs = def.Link.SettleMs
	}
	if f.Link.DiagCapacity == 0 {
		f.Link.DiagCapacity = def.Link.DiagCapacity
	}

	// ------------------------------------------------------------
	// FILL OMITTED CONTROL FIELDS
	// ------------------------------------------------------------

	if f.Control.KP == 0 {
		f.Control.KP = def.Control.KP
	}
	if f.Control.EyeDeadzone == 0 {
		f.Control.EyeDeadzone = def.Control.EyeDeadzone
	}
	if f.Control.NeckDeadzone == 0 {
		f.Control.NeckDeadzone = def.Control.NeckDeadzone
	}
	if f.Control.NeckDelayMs == 0 {
		f.Control.NeckDelayMs = def.Control.NeckDelayMs
	}
	if f.Control.NeckRateDegS == 0 {
		f.Control.NeckRateDegS = def.Control.NeckRateDegS
	}
	if f.Control.BlinkMinWaitMs == 0 {
		f.Control.BlinkMinWaitMs = def.Control.BlinkMinWaitMs
	}
	if f.Control.BlinkMaxWaitMs == 0 {
		f.Control.BlinkMaxWaitMs = def.Control.BlinkMaxWaitMs
	}
	if f.Control.BlinkHoldMs == 0 {
		f.Control.BlinkHoldMs = def.Control.BlinkHoldMs
	}
	if f.Control.CycleMs == 0 {
		f.Control.CycleMs = def.Control.CycleMs
	}

	// ------------------------------------------------------------
	// SERVO GEOMETRY
	// ------------------------------------------------------------

	// Bound order is NOT normalized: the rig relies on raw direction for
	// reversed linkages. An empty servo list gets the stock rig.
	if len(f.Servos) == 0 {
		f.Servos = def.Servos
	}
}
