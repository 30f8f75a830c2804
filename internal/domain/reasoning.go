package domain

// StepStrength grades how firmly a reasoning step supports its conclusion.
type StepStrength string

const (
	StepStrong StepStrength = "strong"
	StepMedium StepStrength = "medium"
	StepWeak   StepStrength = "weak"
)

// ReasoningStep records one applied rule: which rule fired, the facts it
// consumed, and the conclusion it produced. Steps are self-contained so the
// chain reads as a complete audit trail of the calculation.
type ReasoningStep struct {
	Rule        string            `json:"rule"`
	Description string            `json:"description"`
	Inputs      map[string]string `json:"inputs,omitempty"`
	Conclusion  string            `json:"conclusion"`
	Strength    StepStrength      `json:"strength"`
	Source      string            `json:"source,omitempty"` // classical citation, when one exists
}

// ReasoningChain accumulates reasoning steps in calculation order. The chain
// is append-only: steps are never revised or removed once added.
type ReasoningChain struct {
	Steps []ReasoningStep `json:"steps"`
}

// Add appends a step to the chain.
func (c *ReasoningChain) Add(step ReasoningStep) {
	c.Steps = append(c.Steps, step)
}

// Len returns the number of accumulated steps.
func (c *ReasoningChain) Len() int {
	return len(c.Steps)
}
