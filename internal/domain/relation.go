package domain

// RelationKind classifies an inter-branch relationship found during analysis.
type RelationKind string

const (
	RelationOpposition   RelationKind = "opposition"    // 六冲
	RelationUnion        RelationKind = "union"         // 六合
	RelationTriadUnion   RelationKind = "triad_union"   // 三合
	RelationMutualInjury RelationKind = "mutual_injury" // 三刑
	RelationHarm         RelationKind = "harm"          // 六害
)

// RelationImpact is the default reading of a relation for the querent.
type RelationImpact string

const (
	ImpactFavorable   RelationImpact = "favorable"
	ImpactUnfavorable RelationImpact = "unfavorable"
	ImpactNeutral     RelationImpact = "neutral"
)

// RelationFinding is one detected relationship between lines, or between a
// line and a day or month pillar. Parties are human-readable descriptors
// ("3爻午火兄弟", "日辰子水") so the finding reads standalone; Positions
// lists the line positions involved, empty for pillar-only parties.
type RelationFinding struct {
	Kind      RelationKind   `json:"kind"`
	Parties   []string       `json:"parties"`
	Positions []int          `json:"positions,omitempty"`
	Impact    RelationImpact `json:"impact"`
	Partial   bool           `json:"partial,omitempty"` // triad with only two members present
	Note      string         `json:"note"`
}
