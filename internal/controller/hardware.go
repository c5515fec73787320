// internal/controller/hardware.go
package controller

// Mode selects the loop's behavior. It is derived from a physical switch
// and read fresh every cycle (level-triggered), never stored as loop state.
type Mode int

const (
	ModeHold Mode = iota
	ModeAuto
)

func (m Mode) String() string {
	if m == ModeHold {
		return "hold"
	}
	return "auto"
}

// Hardware reports the physical switch positions.
type Hardware interface {
	Mode() Mode
	Enabled() bool
}

// StaticHardware is the fixed-switch implementation used when no physical
// switches exist (host simulation, tests).
type StaticHardware struct {
	M Mode
	E bool
}

func (h StaticHardware) Mode() Mode { return h.M }

func (h StaticHardware) Enabled() bool { return h.E }
