package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_WindowIsClamped(t *testing.T) {
	p := DefaultPolicy()
	cases := map[int]int{0: 0, 1: 2, 5: 10, 7: 14, 8: 15, 10: 15, 20: 15}
	for size, want := range cases {
		assert.Equal(t, want, p.Window(size), "size %d", size)
	}
}

func TestPolicy_Normalized(t *testing.T) {
	p := Policy{InitialGrace: -time.Second}.normalized()
	assert.Equal(t, time.Second, p.Step)
	assert.Equal(t, time.Duration(0), p.InitialGrace)
}

// run drives the settler with sizes[i] as the size observed at the i-th check
// and returns the total waited time and the number of checks made.
func run(t *testing.T, p Policy, sizes func(check int) int) (time.Duration, int) {
	t.Helper()
	s := newSettler(p)
	total := s.start()
	for check := 0; check < 100; check++ {
		wait, settled := s.observe(sizes(check))
		if settled {
			return total, check + 1
		}
		total += wait
	}
	t.Fatalf("settler never settled")
	return 0, 0
}

func TestSettler_QuietBufferSettlesAfterConfirmation(t *testing.T) {
	// grace 2 + outer check 1 + 3 confirmations
	total, checks := run(t, DefaultPolicy(), func(int) int { return 1 })
	assert.Equal(t, 6*time.Second, total)
	assert.Equal(t, 5, checks)
}

func TestSettler_ConfirmationExitsBeforeWindowEnds(t *testing.T) {
	// 10 files give a window of 15 steps, but quiescence ends it early
	total, _ := run(t, DefaultPolicy(), func(int) int { return 10 })
	assert.Equal(t, 6*time.Second, total)
}

func TestSettler_GrowthResetsConfirmation(t *testing.T) {
	// 5 files (window 10); a sixth lands during the second confirmation step
	sizes := []int{5, 5, 5, 6}
	total, _ := run(t, DefaultPolicy(), func(check int) int {
		if check < len(sizes) {
			return sizes[check]
		}
		return 6
	})
	// after the break the baseline stays 5, so the next outer check sees a
	// change; then one quiet outer check and three confirmations
	assert.Equal(t, 10*time.Second, total)
}

func TestSettler_WindowBoundsEndlessGrowth(t *testing.T) {
	// one new file per check: never quiet, so the window (2 steps for 1 file) ends it
	total, checks := run(t, DefaultPolicy(), func(check int) int { return check + 1 })
	assert.Equal(t, 2*time.Second+2*time.Second, total)
	assert.Equal(t, 3, checks)
}

func TestSettler_WindowBoundsLargeGrowingBatch(t *testing.T) {
	// 20 files at grace: window is capped at 15 outer iterations
	total, _ := run(t, DefaultPolicy(), func(check int) int { return 20 + check })
	assert.Equal(t, 2*time.Second+15*time.Second, total)
}

func TestSettler_EmptyBufferSettlesImmediately(t *testing.T) {
	total, checks := run(t, DefaultPolicy(), func(int) int { return 0 })
	assert.Equal(t, 2*time.Second, total)
	assert.Equal(t, 1, checks)
}

func TestSettler_ZeroConfirmStepsSettlesOnFirstQuietCheck(t *testing.T) {
	p := DefaultPolicy()
	p.ConfirmSteps = 0
	total, _ := run(t, p, func(int) int { return 3 })
	assert.Equal(t, 3*time.Second, total)
}

func TestSettler_StartResetsState(t *testing.T) {
	s := newSettler(DefaultPolicy())
	s.start()
	s.observe(4)
	s.observe(4)
	assert.Equal(t, phaseConfirm, s.phase)

	assert.Equal(t, 2*time.Second, s.start())
	assert.Equal(t, phaseGrace, s.phase)
	assert.Zero(t, s.stable)
	assert.Zero(t, s.iter)
}
