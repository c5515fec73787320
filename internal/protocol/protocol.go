// internal/protocol/protocol.go
package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Wire sentinels shared by both sides of the link.
const (
	RelaxCommand = "RELAX"
	RelaxAck     = "ACK_RELAX"
)

// Kind discriminates decoded line variants.
type Kind int

const (
	KindInvalid Kind = iota
	KindPosition
	KindRelax
)

// Command is one decoded wire line. X and Y are meaningful only for
// KindPosition.
type Command struct {
	Kind Kind
	X    int
	Y    int
}

// Invalid is the sentinel for lines that match no recognized form.
// Consumers drop it silently; it never carries an error.
func Invalid() Command {
	return Command{Kind: KindInvalid}
}

// EncodePosition formats a positional error sample as "{x},{y}\n" with
// integer truncation toward zero. Returns false without producing a line
// when either value is not representable as an integer.
func EncodePosition(x, y float64) ([]byte, bool) {
	if !representable(x) || !representable(y) {
		return nil, false
	}
	return []byte(fmt.Sprintf("%d,%d\n", int(x), int(y))), true
}

func representable(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	// Keep truncation well-defined; samples are bounded by frame dimensions.
	return math.Abs(v) < math.MaxInt32
}

// DecodeLine classifies one wire line. Whitespace is trimmed; an exact
// RELAX match wins; otherwise the line must be two comma-separated signed
// integers. Anything else is Invalid.
func DecodeLine(line string) Command {
	s := strings.TrimSpace(line)
	if s == RelaxCommand {
		return Command{Kind: KindRelax}
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Invalid()
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Invalid()
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Invalid()
	}

	return Command{Kind: KindPosition, X: x, Y: y}
}
