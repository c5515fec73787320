// internal/protocol/protocol_test.go
package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePosition(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want string
		ok   bool
	}{
		{"positive", 12, 7, "12,7\n", true},
		{"negative", -5, 10, "-5,10\n", true},
		{"zero", 0, 0, "0,0\n", true},
		{"truncates toward zero", 3.9, -3.9, "3,-3\n", true},
		{"nan x", math.NaN(), 1, "", false},
		{"nan y", 1, math.NaN(), "", false},
		{"inf x", math.Inf(1), 1, "", false},
		{"inf y", 1, math.Inf(-1), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := EncodePosition(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, string(line))
			} else {
				assert.Nil(t, line)
			}
		})
	}
}

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"12,-7\n", Command{Kind: KindPosition, X: 12, Y: -7}},
		{"0,0\n", Command{Kind: KindPosition}},
		{"-5,10", Command{Kind: KindPosition, X: -5, Y: 10}},
		{"RELAX", Command{Kind: KindRelax}},
		{"RELAX\n", Command{Kind: KindRelax}},
		{"  RELAX  \n", Command{Kind: KindRelax}},
		{"", Invalid()},
		{"3,", Invalid()},
		{"2", Invalid()},
		{"badline\n", Invalid()},
		{"1,2,3", Invalid()},
		{"a,b", Invalid()},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeLine(tt.line))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, xy := range [][2]int{{12, -7}, {0, 0}, {-5, 10}, {-1000, 1000}, {640, -480}} {
		line, ok := EncodePosition(float64(xy[0]), float64(xy[1]))
		require.True(t, ok)
		got := DecodeLine(string(line))
		assert.Equal(t, Command{Kind: KindPosition, X: xy[0], Y: xy[1]}, got)
	}
}
