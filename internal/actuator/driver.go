// internal/actuator/driver.go
package actuator

// Discard is the no-hardware driver used for host simulation runs.
type Discard struct{}

func (Discard) SetPulseWidth(int) error { return nil }

func (Discard) Release() error { return nil }

// DriverFactory builds the driver for a servo pin. It lets the rig wiring
// stay independent of whether drives are real, simulated or recorded.
type DriverFactory func(pin int) Driver

// DiscardFactory drives every pin into the void.
func DiscardFactory(int) Driver { return Discard{} }
