package state

import "fmt"

type Phase int

const (
	IDLE Phase = iota
	COMPLETE
)

func (p Phase) String() string {
	switch p {
	case IDLE:
		return "idle"
	case COMPLETE:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type State struct {
	Phase   Phase
	Percent int
}

// Progress tracks the bar's percentage. It only moves forward, in fixed
// steps of 100/stepCount (at least 1), and stops at 100.
//
// Progress is not safe for concurrent use; the controller owns it.
type Progress struct {
	state State
	step  int
}

func NewProgress(stepCount int) (*Progress, error) {
	if stepCount <= 0 {
		return nil, fmt.Errorf("step count must be positive (got %d)", stepCount)
	}
	step := 100 / stepCount
	if step < 1 {
		step = 1
	}
	return &Progress{state: State{Phase: IDLE}, step: step}, nil
}

// Step is the amount added per trigger.
func (p *Progress) Step() int { return p.step }

func (p *Progress) Snapshot() State { return p.state }

// Advance applies one trigger and returns the new percentage and whether
// it completed the session. Once complete, further calls change nothing.
func (p *Progress) Advance() (percent int, complete bool) {
	if p.state.Phase == COMPLETE {
		return p.state.Percent, true
	}
	next := p.state.Percent + p.step
	if next >= 100 {
		next = 100
		p.state.Phase = COMPLETE
	}
	p.state.Percent = next
	return next, p.state.Phase == COMPLETE
}
