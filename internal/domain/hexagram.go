package domain

import (
	"fmt"
)

// Hexagram is one of the 64 six-line figures, identified by its binary key:
// six characters, bottom line first, '1' for yang. All attributes, including
// the home palace and the fixed self/other line positions, are precomputed
// when the table is built; Hexagram values are never mutated afterwards.
type Hexagram struct {
	Key           string  `json:"key"`
	Number        int     `json:"number"` // King Wen sequence 1..64
	Name          string  `json:"name"`
	Upper         Trigram `json:"upper"`
	Lower         Trigram `json:"lower"`
	Palace        Trigram `json:"palace"`
	PalaceElement Element `json:"palace_element"`
	Generation    int     `json:"generation"` // 0 pure .. 6 wandering soul, 7 returning soul
	SelfLine      int     `json:"self_line"`  // 世, 1..6
	OtherLine     int     `json:"other_line"` // 应, 1..6
}

// LinePolarity returns the polarity of the hexagram line at position 1..6,
// counted from the bottom.
func (h Hexagram) LinePolarity(pos int) Polarity {
	if h.Key[pos-1] == '1' {
		return Yang
	}
	return Yin
}

// Pure reports whether the hexagram is the pure (first-generation) hexagram
// of its palace.
func (h Hexagram) Pure() bool {
	return h.Generation == 0
}

// String returns the hexagram name.
func (h Hexagram) String() string {
	return h.Name
}

// HexagramByKey looks up a hexagram by its six-character binary key.
// Returns ErrUnknownHexagram when the key has no table entry; with
// well-formed input that only happens for corrupted keys.
func HexagramByKey(key string) (Hexagram, error) {
	h, ok := hexagramsByKey[key]
	if !ok {
		return Hexagram{}, fmt.Errorf("%w: %q", ErrUnknownHexagram, key)
	}
	return h, nil
}

// HexagramByNumber looks up a hexagram by its King Wen number 1..64.
func HexagramByNumber(n int) (Hexagram, error) {
	if n < 1 || n > len(hexagrams) {
		return Hexagram{}, fmt.Errorf("%w: number %d", ErrUnknownHexagram, n)
	}
	return hexagrams[n-1], nil
}

// Hexagrams returns all 64 hexagrams in King Wen order. The returned slice
// is a copy; callers may not alter the table.
func Hexagrams() []Hexagram {
	out := make([]Hexagram, len(hexagrams))
	copy(out, hexagrams[:])
	return out
}
