package batch

import "time"

// Policy holds the timing constants of settle detection.
type Policy struct {
	// InitialGrace is the wait before the first look at the buffer.
	InitialGrace time.Duration
	// Step is one polling unit.
	Step time.Duration
	// WindowPerFile is how many steps each buffered file adds to the window.
	WindowPerFile int
	// MaxWindow caps the window, in steps.
	MaxWindow int
	// ConfirmSteps is how many quiet steps in a row declare the batch settled.
	ConfirmSteps int
}

// DefaultPolicy returns the stock timings: 2s grace, 1s step, 2 steps per file
// capped at 15, 3 confirmation steps.
func DefaultPolicy() Policy {
	return Policy{
		InitialGrace:  2 * time.Second,
		Step:          time.Second,
		WindowPerFile: 2,
		MaxWindow:     15,
		ConfirmSteps:  3,
	}
}

// Window returns the number of outer iterations allowed for a buffer of count files.
func (p Policy) Window(count int) int {
	w := count * p.WindowPerFile
	if w > p.MaxWindow {
		w = p.MaxWindow
	}
	if w < 0 {
		return 0
	}
	return w
}

func (p Policy) normalized() Policy {
	if p.Step <= 0 {
		p.Step = time.Second
	}
	if p.InitialGrace < 0 {
		p.InitialGrace = 0
	}
	return p
}
