package domain

import (
	"encoding/json"
	"fmt"
)

// Polarity is the yin/yang quality of a stem, a trigram line, or a cast line.
type Polarity int

const (
	Yin Polarity = iota
	Yang
)

// String returns the lowercase English name of the polarity.
func (p Polarity) String() string {
	if p == Yang {
		return "yang"
	}
	return "yin"
}

// Opposite returns the flipped polarity.
func (p Polarity) Opposite() Polarity {
	if p == Yang {
		return Yin
	}
	return Yang
}

// MarshalJSON encodes the polarity as its English name.
func (p Polarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a polarity from its English name.
func (p *Polarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "yang":
		*p = Yang
	case "yin":
		*p = Yin
	default:
		return fmt.Errorf("%w: polarity %q", ErrInvalidFormat, s)
	}
	return nil
}

// Element is one of the five phases (五行). The constant order follows the
// generation cycle so that cyclic arithmetic stays trivial: each element
// generates its successor and dominates the element two steps ahead.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [...]string{"wood", "fire", "earth", "metal", "water"}
var elementChinese = [...]string{"木", "火", "土", "金", "水"}

// String returns the lowercase English name of the element.
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementNames[e]
}

// ChineseName returns the single-character Chinese name of the element.
func (e Element) ChineseName() string {
	return elementChinese[e]
}

// Valid reports whether the element is one of the five defined phases.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

// Generating returns the element this one generates (生):
// wood→fire→earth→metal→water→wood.
func (e Element) Generating() Element {
	return (e + 1) % 5
}

// Dominating returns the element this one dominates (克):
// wood→earth, earth→water, water→fire, fire→metal, metal→wood.
func (e Element) Dominating() Element {
	return (e + 2) % 5
}

// Generates reports whether e generates other.
func (e Element) Generates(other Element) bool {
	return e.Generating() == other
}

// Dominates reports whether e dominates other.
func (e Element) Dominates(other Element) bool {
	return e.Dominating() == other
}

// MarshalJSON encodes the element as its English name.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// UnmarshalJSON decodes an element from its English name.
func (e *Element) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range elementNames {
		if name == s {
			*e = Element(i)
			return nil
		}
	}
	return fmt.Errorf("%w: element %q", ErrInvalidFormat, s)
}

// Stem is one of the ten heavenly stems (天干), indexed 0..9 in the
// traditional order 甲乙丙丁戊己庚辛壬癸.
type Stem int

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

var stemChinese = [...]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemElements = [...]Element{
	Wood, Wood, Fire, Fire, Earth, Earth, Metal, Metal, Water, Water,
}

// StemAt returns the stem at the given cyclic offset, normalizing negative
// and out-of-range values into 0..9.
func StemAt(n int) Stem {
	return Stem(((n % 10) + 10) % 10)
}

// String returns the Chinese character of the stem.
func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("stem(%d)", int(s))
	}
	return stemChinese[s]
}

// Valid reports whether the stem index is within 0..9.
func (s Stem) Valid() bool {
	return s >= StemJia && s <= StemGui
}

// Element returns the five-phase element of the stem.
func (s Stem) Element() Element {
	return stemElements[s]
}

// Polarity returns yang for even-indexed stems and yin for odd-indexed ones.
func (s Stem) Polarity() Polarity {
	if s%2 == 0 {
		return Yang
	}
	return Yin
}

// MarshalJSON encodes the stem as its Chinese character.
func (s Stem) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a stem from its Chinese character.
func (s *Stem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, ch := range stemChinese {
		if ch == name {
			*s = Stem(i)
			return nil
		}
	}
	return fmt.Errorf("%w: stem %q", ErrInvalidFormat, name)
}

// Branch is one of the twelve earthly branches (地支), indexed 0..11 in the
// traditional order 子丑寅卯辰巳午未申酉戌亥.
type Branch int

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

var branchChinese = [...]string{
	"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥",
}

var branchElements = [...]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

// BranchAt returns the branch at the given cyclic offset, normalizing
// negative and out-of-range values into 0..11.
func BranchAt(n int) Branch {
	return Branch(((n % 12) + 12) % 12)
}

// String returns the Chinese character of the branch.
func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("branch(%d)", int(b))
	}
	return branchChinese[b]
}

// Valid reports whether the branch index is within 0..11.
func (b Branch) Valid() bool {
	return b >= BranchZi && b <= BranchHai
}

// Element returns the five-phase element of the branch.
func (b Branch) Element() Element {
	return branchElements[b]
}

// Next returns the branch one cyclic step forward.
func (b Branch) Next() Branch {
	return BranchAt(int(b) + 1)
}

// Prev returns the branch one cyclic step backward.
func (b Branch) Prev() Branch {
	return BranchAt(int(b) - 1)
}

// ClashesWith reports whether the two branches stand in opposition (六冲),
// six cyclic steps apart.
func (b Branch) ClashesWith(other Branch) bool {
	return BranchAt(int(b)+6) == other
}

// harmonyPairs lists the six unions (六合).
var harmonyPairs = [6][2]Branch{
	{BranchZi, BranchChou},
	{BranchYin, BranchHai},
	{BranchMao, BranchXu},
	{BranchChen, BranchYou},
	{BranchSi, BranchShen},
	{BranchWu, BranchWei},
}

// HarmonizesWith reports whether the two branches form a union (六合).
func (b Branch) HarmonizesWith(other Branch) bool {
	for _, pair := range harmonyPairs {
		if (pair[0] == b && pair[1] == other) || (pair[0] == other && pair[1] == b) {
			return true
		}
	}
	return false
}

// harmPairs lists the six harms (六害).
var harmPairs = [6][2]Branch{
	{BranchZi, BranchWei},
	{BranchChou, BranchWu},
	{BranchYin, BranchSi},
	{BranchMao, BranchChen},
	{BranchShen, BranchHai},
	{BranchYou, BranchXu},
}

// HarmsWith reports whether the two branches stand in a harm pairing (六害).
func (b Branch) HarmsWith(other Branch) bool {
	for _, pair := range harmPairs {
		if (pair[0] == b && pair[1] == other) || (pair[0] == other && pair[1] == b) {
			return true
		}
	}
	return false
}

// punishments maps each punishing branch to its target (三刑). The relation
// is directional; the four self-punishing branches map to themselves.
var punishments = map[Branch]Branch{
	BranchYin:  BranchSi,
	BranchSi:   BranchShen,
	BranchShen: BranchYin,
	BranchChou: BranchXu,
	BranchXu:   BranchWei,
	BranchWei:  BranchChou,
	BranchZi:   BranchMao,
	BranchMao:  BranchZi,
	BranchChen: BranchChen,
	BranchWu:   BranchWu,
	BranchYou:  BranchYou,
	BranchHai:  BranchHai,
}

// Punishes reports whether b punishes other (三刑), including the
// self-punishment of 辰午酉亥.
func (b Branch) Punishes(other Branch) bool {
	return punishments[b] == other
}

// MarshalJSON encodes the branch as its Chinese character.
func (b Branch) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a branch from its Chinese character.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, ch := range branchChinese {
		if ch == name {
			*b = Branch(i)
			return nil
		}
	}
	return fmt.Errorf("%w: branch %q", ErrInvalidFormat, name)
}

// TriadUnion is one of the four three-branch unions (三合) and the element
// the completed formation produces.
type TriadUnion struct {
	Branches [3]Branch
	Element  Element
}

// TriadUnions lists the four triads in fixed scan order. Analysis reports at
// most one triad finding, taken from the first set with enough members.
var TriadUnions = [4]TriadUnion{
	{Branches: [3]Branch{BranchShen, BranchZi, BranchChen}, Element: Water},
	{Branches: [3]Branch{BranchYin, BranchWu, BranchXu}, Element: Fire},
	{Branches: [3]Branch{BranchSi, BranchYou, BranchChou}, Element: Metal},
	{Branches: [3]Branch{BranchHai, BranchMao, BranchWei}, Element: Wood},
}

// LifeStage is a position in the twelve-stage life cycle (十二长生) of an
// element across the branches, from birth (长生) through nurture (养).
type LifeStage int

const (
	StageBirth   LifeStage = iota // 长生
	StageBath                     // 沐浴
	StageCap                      // 冠带
	StageOffice                   // 临官
	StagePeak                     // 帝旺
	StageDecline                  // 衰
	StageIllness                  // 病
	StageDeath                    // 死
	StageTomb                     // 墓
	StageSevered                  // 绝
	StageFetal                    // 胎
	StageNurture                  // 养
)

var lifeStageChinese = [...]string{
	"长生", "沐浴", "冠带", "临官", "帝旺", "衰", "病", "死", "墓", "绝", "胎", "养",
}

// String returns the Chinese name of the life stage.
func (s LifeStage) String() string {
	if s < StageBirth || s > StageNurture {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return lifeStageChinese[s]
}

// MarshalJSON encodes the life stage as its Chinese name.
func (s LifeStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a life stage from its Chinese name.
func (s *LifeStage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, ch := range lifeStageChinese {
		if ch == name {
			*s = LifeStage(i)
			return nil
		}
	}
	return fmt.Errorf("%w: life stage %q", ErrInvalidFormat, name)
}

// lifeBirthBranches maps each element to the branch where its cycle begins.
// Earth shares water's starting branch (水土同宫 convention).
var lifeBirthBranches = [...]Branch{
	Wood:  BranchHai,
	Fire:  BranchYin,
	Earth: BranchShen,
	Metal: BranchSi,
	Water: BranchShen,
}

// LifeStageOf returns the life-cycle stage of an element at a branch.
func LifeStageOf(e Element, b Branch) LifeStage {
	birth := lifeBirthBranches[e]
	return LifeStage(((int(b)-int(birth))%12 + 12) % 12)
}
