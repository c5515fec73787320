// internal/config/config.go
package config

type Config struct {
	Follower FollowerConfig `yaml:"follower"`
}

type FollowerConfig struct {
	Link    LinkConfig    `yaml:"link"`
	Control ControlConfig `yaml:"control"`
	Servos  []ServoConfig `yaml:"servos"`
}

// ---- LINK ----

type LinkConfig struct {
	Device       string `yaml:"device" env:"FOLLOWER_DEVICE"`
	Baud         int    `yaml:"baud" env:"FOLLOWER_BAUD"`
	NoSerial     bool   `yaml:"no_serial" env:"FOLLOWER_NO_SERIAL"`
	TimeoutMs    int    `yaml:"timeout_ms"`
	MinBackoffMs int    `yaml:"min_backoff_ms"`
	MaxBackoffMs int    `yaml:"max_backoff_ms"`
	SettleMs     int    `yaml:"settle_ms"`
	DiagCapacity int    `yaml:"diag_capacity"`
}

// ---- CONTROL ----

type ControlConfig struct {
	KP             float64 `yaml:"kp"`
	EyeDeadzone    int     `yaml:"eye_deadzone"`
	NeckDeadzone   int     `yaml:"neck_deadzone"`
	NeckDelayMs    int     `yaml:"neck_delay_ms"`
	NeckRateDegS   float64 `yaml:"neck_rate_deg_s"`
	BlinkMinWaitMs int     `yaml:"blink_min_wait_ms"`
	BlinkMaxWaitMs int     `yaml:"blink_max_wait_ms"`
	BlinkHoldMs    int     `yaml:"blink_hold_ms"`
	CycleMs        int     `yaml:"cycle_ms"`
}

// ---- SERVO GEOMETRY ----

// ServoConfig describes one servo's wiring. Min and Max may be declared in
// either order; direction carries meaning for some linkages, so the order
// is preserved here and only normalized at the clamping layer.
type ServoConfig struct {
	Name    string `yaml:"name"`
	Pin     int    `yaml:"pin"`
	Min     int    `yaml:"min"`
	Max     int    `yaml:"max"`
	Default int    `yaml:"default"`
}

// Servo names the rig requires.
const (
	ServoEyeLR = "eye_lr"
	ServoEyeUD = "eye_ud"
	ServoLidTL = "lid_tl"
	ServoLidTR = "lid_tr"
	ServoBaseX = "base_x"
	ServoBaseY = "base_y"
)

// RequiredServos lists every servo name the rig must be given.
func RequiredServos() []string {
	return []string{
		ServoEyeLR, ServoEyeUD,
		ServoLidTL, ServoLidTR,
		ServoBaseX, ServoBaseY,
	}
}

// Default returns the stock configuration used when no config file is
// given: the standard animatronic head on /dev/ttyACM0.
func Default() *Config {
	return &Config{
		Follower: FollowerConfig{
			Link: LinkConfig{
				Device:       "/dev/ttyACM0",
				Baud:         115200,
				TimeoutMs:    1000,
				MinBackoffMs: 500,
				MaxBackoffMs: 30000,
				SettleMs:     2000,
				DiagCapacity: 100,
			},
			Control: ControlConfig{
				KP:             0.03,
				EyeDeadzone:    25,
				NeckDeadzone:   20,
				NeckDelayMs:    1200,
				NeckRateDegS:   60,
				BlinkMinWaitMs: 2000,
				BlinkMaxWaitMs: 8000,
				BlinkHoldMs:    60,
				CycleMs:        10,
			},
			Servos: []ServoConfig{
				{Name: ServoEyeLR, Pin: 10, Min: 40, Max: 140, Default: 90},
				{Name: ServoEyeUD, Pin: 11, Min: 40, Max: 140, Default: 90},
				{Name: ServoLidTL, Pin: 12, Min: 90, Max: 170, Default: 90},
				{Name: ServoLidTR, Pin: 14, Min: 90, Max: 10, Default: 90},
				{Name: ServoBaseX, Pin: 13, Min: 10, Max: 170, Default: 90},
				{Name: ServoBaseY, Pin: 15, Min: 40, Max: 140, Default: 90},
			},
		},
	}
}
