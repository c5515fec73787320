// internal/actuator/rig_test.go
package actuator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRig() (*Rig, map[int]*recorder) {
	recs := map[int]*recorder{}
	factory := func(pin int) Driver {
		r := &recorder{}
		recs[pin] = r
		return r
	}
	return NewRig(DefaultSpecs(), factory, 60), recs
}

func TestCalibrateAllCentersEverything(t *testing.T) {
	r, _ := testRig()

	r.EyeLR.Write(120)
	r.BaseX.Write(40)
	r.CalibrateAll()

	for _, s := range r.all() {
		assert.Equal(t, s.Default, s.Target())
	}
}

func TestRelaxAllReleasesEveryServo(t *testing.T) {
	r, recs := testRig()

	r.RelaxAll()
	require.Len(t, recs, 6)
	for pin, rec := range recs {
		assert.Equal(t, 1, rec.released, "pin %d", pin)
	}
}

func TestMoveEyesNegatesHorizontalOnly(t *testing.T) {
	r, _ := testRig()

	// Positive X error must drive LR down; positive Y error drives UD up.
	r.MoveEyes(100, 100, 0.03, 25)
	assert.Less(t, r.EyeLR.Target(), r.EyeLR.Default)
	assert.Greater(t, r.EyeUD.Target(), r.EyeUD.Default)
}

func TestBlinkClosesBothLids(t *testing.T) {
	r, _ := testRig()

	r.LidTL.Write(160)
	r.LidTR.Write(60)
	r.Blink()

	assert.Equal(t, r.LidTL.Default, r.LidTL.Target())
	assert.Equal(t, r.LidTR.Default, r.LidTR.Target())
}

func TestLidSyncFollowsVerticalEye(t *testing.T) {
	r, _ := testRig()

	// Eye fully up: lids wide open.
	r.EyeUD.Write(140)
	r.LidSync()
	assert.Equal(t, 160, r.LidTL.Target())
	assert.Equal(t, 90, r.LidTR.Target()) // 100 clamped at the hi bound

	// Eye fully down: lids mostly closed.
	r.EyeUD.Write(40)
	r.LidSync()
	assert.Equal(t, 120, r.LidTL.Target())
	assert.Equal(t, 60, r.LidTR.Target())
}

func TestEyesOffCenter(t *testing.T) {
	r, _ := testRig()

	assert.False(t, r.EyesOffCenter(20))

	r.EyeLR.Write(110)
	assert.True(t, r.EyesOffCenter(20))

	r.EyeLR.Calibrate()
	r.EyeUD.Write(70)
	assert.True(t, r.EyesOffCenter(20))
}

func TestRetargetNeckMapsEyeTargets(t *testing.T) {
	r, _ := testRig()

	r.EyeLR.Write(120)
	r.EyeUD.Write(60)
	r.RetargetNeck()

	bx, by := r.NeckTarget()
	assert.Equal(t, 150, bx) // 120 * 1.25
	assert.Equal(t, 72, by)  // 90 - (90-60)*0.6
}

func TestNeckSmoothMoveBoundedRate(t *testing.T) {
	r, _ := testRig()

	r.EyeLR.Write(140)
	r.RetargetNeck() // bx target 175, clamped at write time

	t0 := time.Unix(0, 0)
	r.NeckSmoothMove(t0) // first call records the clock only
	assert.Equal(t, 90, r.BaseX.Target())

	// 100ms at 60 deg/s: at most 6 degrees of travel.
	r.NeckSmoothMove(t0.Add(100 * time.Millisecond))
	assert.Equal(t, 96, r.BaseX.Target())

	r.NeckSmoothMove(t0.Add(200 * time.Millisecond))
	assert.Equal(t, 102, r.BaseX.Target())
}

func TestNeckSmoothMoveConvergesExactly(t *testing.T) {
	r, _ := testRig()

	r.bxTarget = 93
	r.byTarget = 90

	t0 := time.Unix(0, 0)
	r.NeckSmoothMove(t0)

	// One whole second allows 60 degrees; only 3 are needed, so the servo
	// snaps exactly onto the target with no overshoot.
	r.NeckSmoothMove(t0.Add(time.Second))
	assert.Equal(t, 93, r.BaseX.Target())
	assert.Equal(t, 90, r.BaseY.Target())

	// Staying put once converged.
	r.NeckSmoothMove(t0.Add(2 * time.Second))
	assert.Equal(t, 93, r.BaseX.Target())
}

func TestNeckSmoothMoveResyncsAfterExternalWrite(t *testing.T) {
	r, _ := testRig()

	r.bxTarget = 150
	t0 := time.Unix(0, 0)
	r.NeckSmoothMove(t0)
	r.NeckSmoothMove(t0.Add(2 * time.Second))
	require.Equal(t, 150, r.BaseX.Target())

	// Recentering writes the base servos without going through the smoother.
	r.CalibrateAll()
	require.Equal(t, 90, r.BaseX.Target())

	// The next smooth step starts from where the servo actually is, bounded
	// by rate x elapsed, not a jump back to the stale cached position.
	r.NeckSmoothMove(t0.Add(2*time.Second + 10*time.Millisecond))
	assert.Equal(t, 91, r.BaseX.Target())
}

func TestNeckSmoothMoveTracksClampedTarget(t *testing.T) {
	r, _ := testRig()

	r.EyeLR.Write(140)
	r.RetargetNeck() // bx goal 175, beyond the 170 travel limit

	t0 := time.Unix(0, 0)
	r.NeckSmoothMove(t0)
	r.NeckSmoothMove(t0.Add(3 * time.Second))
	require.Equal(t, 170, r.BaseX.Target())

	// Reversing the goal must move immediately; no phantom degrees above the
	// travel limit are walked back first.
	r.EyeLR.Write(128)
	r.RetargetNeck() // bx goal 160
	r.NeckSmoothMove(t0.Add(3*time.Second + 100*time.Millisecond))
	assert.Equal(t, 164, r.BaseX.Target())
}

func TestNeckSmoothMoveAccumulatesSubDegreeSteps(t *testing.T) {
	r, _ := testRig()

	r.bxTarget = 100

	t0 := time.Unix(0, 0)
	r.NeckSmoothMove(t0)

	// 5ms cycles allow 0.3 degrees each; rounding alone would stall.
	now := t0
	for i := 0; i < 10; i++ {
		now = now.Add(5 * time.Millisecond)
		r.NeckSmoothMove(now)
	}
	assert.Equal(t, 93, r.BaseX.Target())
}
