package liuyao

import (
	"github.com/yaolab/liuyao-api/internal/domain"
)

// lineKey renders six line states as a table key, bottom line first,
// '1' for yang.
func lineKey(lines [6]domain.LineState) string {
	var key [6]byte
	for i, l := range lines {
		if l.Polarity == domain.Yang {
			key[i] = '1'
		} else {
			key[i] = '0'
		}
	}
	return string(key[:])
}

// changedLineKey flips only the active lines and renders the resulting key.
// ok is false when no line is active and no changed hexagram exists.
func changedLineKey(lines [6]domain.LineState) (string, bool) {
	any := false
	var key [6]byte
	for i, l := range lines {
		p := l.Polarity
		if l.Active {
			any = true
			p = p.Opposite()
		}
		if p == domain.Yang {
			key[i] = '1'
		} else {
			key[i] = '0'
		}
	}
	return string(key[:]), any
}

// nuclearKey builds the nuclear hexagram's key: lines 2,3,4 become the new
// lower trigram and lines 3,4,5 the new upper.
func nuclearKey(key string) string {
	return key[1:4] + key[2:5]
}

// oppositeKey flips every line.
func oppositeKey(key string) string {
	out := []byte(key)
	for i := range out {
		if out[i] == '1' {
			out[i] = '0'
		} else {
			out[i] = '1'
		}
	}
	return string(out)
}

// reversedKey turns the figure upside down.
func reversedKey(key string) string {
	out := make([]byte, len(key))
	for i := range out {
		out[i] = key[len(key)-1-i]
	}
	return string(out)
}

// derivedHexagrams bundles the four figures derived from the primary one.
type derivedHexagrams struct {
	changed  *domain.Hexagram
	nuclear  domain.Hexagram
	opposite domain.Hexagram
	reversed domain.Hexagram
}

// resolveDerived looks up the changed, nuclear, opposite and reversed
// hexagrams of a casting. Lookup failures are invariant violations and are
// returned as hard errors.
func resolveDerived(primary domain.Hexagram, lines [6]domain.LineState) (derivedHexagrams, error) {
	var out derivedHexagrams

	if key, ok := changedLineKey(lines); ok {
		h, err := domain.HexagramByKey(key)
		if err != nil {
			return out, err
		}
		out.changed = &h
	}

	nuclear, err := domain.HexagramByKey(nuclearKey(primary.Key))
	if err != nil {
		return out, err
	}
	out.nuclear = nuclear

	opposite, err := domain.HexagramByKey(oppositeKey(primary.Key))
	if err != nil {
		return out, err
	}
	out.opposite = opposite

	reversed, err := domain.HexagramByKey(reversedKey(primary.Key))
	if err != nil {
		return out, err
	}
	out.reversed = reversed

	return out, nil
}
