package domain

import (
	"time"

	"github.com/google/uuid"
)

// DivinationResult is the complete outcome of one casting. It is a value:
// once the pipeline returns it, nothing modifies it. Identical inputs
// (same draws, same moment, same question framing) produce identical results
// except for the generated ID.
type DivinationResult struct {
	ID        uuid.UUID    `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Input     CastingInput `json:"input"`

	Calendar CalendarTime `json:"calendar"`

	Primary      Hexagram  `json:"primary"`
	Lines        [6]Line   `json:"lines"`
	Changed      *Hexagram `json:"changed,omitempty"`
	ChangedLines []Line    `json:"changed_lines,omitempty"`
	Nuclear      Hexagram  `json:"nuclear"`
	Opposite     Hexagram  `json:"opposite"`
	Reversed     Hexagram  `json:"reversed"`

	Focus          FocusSelection    `json:"focus"`
	Relations      []RelationFinding `json:"relations"`
	Interpretation Interpretation    `json:"interpretation"`
	Reasoning      ReasoningChain    `json:"reasoning"`
}

// SelfLine returns the line carrying the 世 flag.
func (r *DivinationResult) SelfLine() (Line, error) {
	for _, l := range r.Lines {
		if l.Self {
			return l, nil
		}
	}
	return Line{}, ErrMissingWorldLine
}

// OtherLine returns the line carrying the 应 flag.
func (r *DivinationResult) OtherLine() (Line, error) {
	for _, l := range r.Lines {
		if l.Other {
			return l, nil
		}
	}
	return Line{}, ErrMissingResponseLine
}
