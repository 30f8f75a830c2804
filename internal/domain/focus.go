package domain

// FocusTargetKind says what a focus selection points at: a familial role
// among the six lines, the self (世) line, or the other (应) line.
type FocusTargetKind string

const (
	FocusRole  FocusTargetKind = "role"
	FocusSelf  FocusTargetKind = "self"
	FocusOther FocusTargetKind = "other"
)

// FocusSelection is the chosen focus element (用神) of a casting. When the
// target role does not appear among the six lines the selection is hidden:
// Positions is empty, Hidden is set, and a secondary candidate is offered.
// A hidden focus is a normal outcome, never an error.
type FocusSelection struct {
	Kind      FocusTargetKind `json:"kind"`
	Role      FamilialRole    `json:"role,omitempty"` // set when Kind == FocusRole
	Positions []int           `json:"positions"`      // manifest line positions, bottom to top
	Hidden    bool            `json:"hidden"`
	Rationale string          `json:"rationale"`
	Secondary *FocusSelection `json:"secondary,omitempty"`
}
