package domain

import "time"

// Trend is the six-level overall judgment of a casting.
type Trend string

const (
	TrendStronglyFavorable   Trend = "strongly_favorable"
	TrendFavorable           Trend = "favorable"
	TrendSteady              Trend = "steady"
	TrendUnfavorable         Trend = "unfavorable"
	TrendStronglyUnfavorable Trend = "strongly_unfavorable"
	TrendUncertain           Trend = "uncertain"
)

// Valid reports whether the trend is one of the six defined levels.
func (t Trend) Valid() bool {
	switch t {
	case TrendStronglyFavorable, TrendFavorable, TrendSteady,
		TrendUnfavorable, TrendStronglyUnfavorable, TrendUncertain:
		return true
	default:
		return false
	}
}

var trendChinese = map[Trend]string{
	TrendStronglyFavorable:   "大吉",
	TrendFavorable:           "吉",
	TrendSteady:              "平",
	TrendUnfavorable:         "凶",
	TrendStronglyUnfavorable: "大凶",
	TrendUncertain:           "未明",
}

// ChineseName returns the traditional single-word reading of the trend.
func (t Trend) ChineseName() string {
	return trendChinese[t]
}

// ItemTone is the direction an interpretation item pushes the overall trend.
type ItemTone string

const (
	ToneSupportive  ItemTone = "supportive"
	ToneObstructive ItemTone = "obstructive"
	ToneRisk        ItemTone = "risk"
	ToneNeutral     ItemTone = "neutral"
)

// InterpretationItem is one finding of the interpretation pass. Items about
// the focus element weigh double in the trend tally.
type InterpretationItem struct {
	Aspect string   `json:"aspect"` // which sub-analysis produced it
	Tone   ItemTone `json:"tone"`
	Focus  bool     `json:"focus,omitempty"`
	Text   string   `json:"text"`
}

// TimingScope says which calendar unit a timing prediction is expressed in.
type TimingScope string

const (
	TimingDay   TimingScope = "day"
	TimingMonth TimingScope = "month"
)

// TimingPrediction points at a future day or month whose branch interacts
// meaningfully with the focus line.
type TimingPrediction struct {
	Scope  TimingScope `json:"scope"`
	Branch Branch      `json:"branch"`
	Date   time.Time   `json:"date"`
	Note   string      `json:"note"`
}

// NarrativeNode is one node of the fixed-depth causal narrative tree
// (self reading → focus reading → trend → advice).
type NarrativeNode struct {
	Topic    string          `json:"topic"`
	Text     string          `json:"text"`
	Children []NarrativeNode `json:"children,omitempty"`
}

// Interpretation is the complete qualitative output of a casting.
type Interpretation struct {
	Trend            Trend                `json:"trend"`
	TechnicalSummary string               `json:"technical_summary"`
	PlainSummary     string               `json:"plain_summary"`
	Items            []InterpretationItem `json:"items"`
	Timing           []TimingPrediction   `json:"timing"`
	Uncertainties    []string             `json:"uncertainties"`
	Advice           string               `json:"advice"`
	Narrative        NarrativeNode        `json:"narrative"`
}
