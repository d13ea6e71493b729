package batch

import "time"

type phase int

const (
	phaseGrace phase = iota
	phaseOuter
	phaseConfirm
	phaseDone
)

// settler decides when a growing buffer has stopped growing. It never sleeps:
// the caller waits for the returned duration and then reports the buffer size
// through observe.
type settler struct {
	policy Policy
	phase  phase

	baseline int // size at the start of the current outer iteration
	observed int // size seen by the last outer check
	iter     int
	window   int
	stable   int
}

func newSettler(p Policy) settler {
	return settler{policy: p}
}

// start resets the machine and returns the first wait.
func (s *settler) start() time.Duration {
	*s = settler{policy: s.policy, phase: phaseGrace}
	return s.policy.InitialGrace
}

// observe consumes the buffer size measured after the previous wait and returns
// the next wait, or settled=true when the batch is complete.
func (s *settler) observe(count int) (wait time.Duration, settled bool) {
	switch s.phase {
	case phaseGrace:
		s.baseline = count
		s.window = s.policy.Window(count)
		if s.window <= 0 {
			return s.done()
		}
		s.phase = phaseOuter
		return s.policy.Step, false

	case phaseOuter:
		s.observed = count
		if count != s.baseline {
			return s.next(count)
		}
		if s.policy.ConfirmSteps <= 0 {
			return s.done()
		}
		s.phase = phaseConfirm
		s.stable = 0
		return s.policy.Step, false

	case phaseConfirm:
		if count == s.observed {
			s.stable++
			if s.stable >= s.policy.ConfirmSteps {
				return s.done()
			}
			return s.policy.Step, false
		}
		// growth during confirmation: the baseline is the size from the outer
		// check, not the latest one, so the next outer check sees a change
		return s.next(s.observed)
	}
	return s.done()
}

func (s *settler) next(baseline int) (time.Duration, bool) {
	s.baseline = baseline
	s.iter++
	if s.iter >= s.window {
		return s.done()
	}
	s.phase = phaseOuter
	return s.policy.Step, false
}

func (s *settler) done() (time.Duration, bool) {
	s.phase = phaseDone
	return 0, true
}
