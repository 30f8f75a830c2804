package domain

import (
	"encoding/json"
	"fmt"
)

// Trigram is one of the eight three-line figures (八卦), indexed in the
// primal (先天) order 乾兑离震巽坎艮坤. Line patterns are read bottom to top
// with '1' for yang.
type Trigram int

const (
	TrigramQian Trigram = iota // ☰ 乾
	TrigramDui                 // ☱ 兑
	TrigramLi                  // ☲ 离
	TrigramZhen                // ☳ 震
	TrigramXun                 // ☴ 巽
	TrigramKan                 // ☵ 坎
	TrigramGen                 // ☶ 艮
	TrigramKun                 // ☷ 坤
)

// trigramInfo bundles the static attributes of one trigram: its names, line
// pattern, element, the stems it installs on inner and outer halves, and the
// fixed six-branch sequence its lines carry (纳甲).
type trigramInfo struct {
	name    string
	nature  string
	bits    string // bottom line first
	element Element
	inner   Stem
	outer   Stem
	najia   [6]Branch
}

var trigramTable = [8]trigramInfo{
	TrigramQian: {
		name: "乾", nature: "天", bits: "111", element: Metal,
		inner: StemJia, outer: StemRen,
		najia: [6]Branch{BranchZi, BranchYin, BranchChen, BranchWu, BranchShen, BranchXu},
	},
	TrigramDui: {
		name: "兑", nature: "泽", bits: "110", element: Metal,
		inner: StemDing, outer: StemDing,
		najia: [6]Branch{BranchSi, BranchMao, BranchChou, BranchHai, BranchYou, BranchWei},
	},
	TrigramLi: {
		name: "离", nature: "火", bits: "101", element: Fire,
		inner: StemJi, outer: StemJi,
		najia: [6]Branch{BranchMao, BranchChou, BranchHai, BranchYou, BranchWei, BranchSi},
	},
	TrigramZhen: {
		name: "震", nature: "雷", bits: "100", element: Wood,
		inner: StemGeng, outer: StemGeng,
		najia: [6]Branch{BranchZi, BranchYin, BranchChen, BranchWu, BranchShen, BranchXu},
	},
	TrigramXun: {
		name: "巽", nature: "风", bits: "011", element: Wood,
		inner: StemXin, outer: StemXin,
		najia: [6]Branch{BranchChou, BranchHai, BranchYou, BranchWei, BranchSi, BranchMao},
	},
	TrigramKan: {
		name: "坎", nature: "水", bits: "010", element: Water,
		inner: StemWu, outer: StemWu,
		najia: [6]Branch{BranchYin, BranchChen, BranchWu, BranchShen, BranchXu, BranchZi},
	},
	TrigramGen: {
		name: "艮", nature: "山", bits: "001", element: Earth,
		inner: StemBing, outer: StemBing,
		najia: [6]Branch{BranchChen, BranchWu, BranchShen, BranchXu, BranchZi, BranchYin},
	},
	TrigramKun: {
		name: "坤", nature: "地", bits: "000", element: Earth,
		inner: StemYi, outer: StemGui,
		najia: [6]Branch{BranchWei, BranchSi, BranchMao, BranchChou, BranchHai, BranchYou},
	},
}

// trigramByBits maps a three-character line pattern to its trigram.
var trigramByBits = func() map[string]Trigram {
	m := make(map[string]Trigram, 8)
	for t := TrigramQian; t <= TrigramKun; t++ {
		m[trigramTable[t].bits] = t
	}
	return m
}()

// TrigramAt returns the trigram at the given cyclic primal-order offset,
// normalizing negative and out-of-range values into 0..7.
func TrigramAt(n int) Trigram {
	return Trigram(((n % 8) + 8) % 8)
}

// TrigramFromBits looks up a trigram by its bottom-to-top line pattern.
func TrigramFromBits(bits string) (Trigram, bool) {
	t, ok := trigramByBits[bits]
	return t, ok
}

// Valid reports whether the trigram index is within 0..7.
func (t Trigram) Valid() bool {
	return t >= TrigramQian && t <= TrigramKun
}

// String returns the Chinese character of the trigram.
func (t Trigram) String() string {
	if !t.Valid() {
		return fmt.Sprintf("trigram(%d)", int(t))
	}
	return trigramTable[t].name
}

// Nature returns the natural image of the trigram (天, 泽, 火, ...), used to
// build compound hexagram names.
func (t Trigram) Nature() string {
	return trigramTable[t].nature
}

// Bits returns the three-character line pattern, bottom line first.
func (t Trigram) Bits() string {
	return trigramTable[t].bits
}

// Element returns the five-phase element of the trigram.
func (t Trigram) Element() Element {
	return trigramTable[t].element
}

// LinePolarity returns the polarity of the trigram line at position 1..3,
// counted from the bottom.
func (t Trigram) LinePolarity(pos int) Polarity {
	if trigramTable[t].bits[pos-1] == '1' {
		return Yang
	}
	return Yin
}

// InnerStem returns the stem installed when the trigram forms the lower half
// of a hexagram.
func (t Trigram) InnerStem() Stem {
	return trigramTable[t].inner
}

// OuterStem returns the stem installed when the trigram forms the upper half
// of a hexagram.
func (t Trigram) OuterStem() Stem {
	return trigramTable[t].outer
}

// NajiaBranch returns the branch the trigram installs at hexagram position
// 1..6. Positions 1..3 apply when the trigram sits in the lower half,
// positions 4..6 when it sits in the upper half.
func (t Trigram) NajiaBranch(pos int) Branch {
	return trigramTable[t].najia[pos-1]
}

// MarshalJSON encodes the trigram as its Chinese character.
func (t Trigram) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a trigram from its Chinese character.
func (t *Trigram) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i := range trigramTable {
		if trigramTable[i].name == name {
			*t = Trigram(i)
			return nil
		}
	}
	return fmt.Errorf("%w: trigram %q", ErrInvalidFormat, name)
}
