package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// shareCodeFields is the number of '|'-separated fields inside a share code.
const shareCodeFields = 4

// ShareCode encodes the casting input into a compact URL-safe string that
// replays the same calculation: the six draw digits, the cast moment at
// millisecond precision, the category, and the method. Subtype and seeker
// are presentation context and are not carried.
func (in CastingInput) ShareCode() string {
	var digits [6]byte
	for i, d := range in.Draws {
		digits[i] = byte('0' + int(d))
	}
	payload := fmt.Sprintf("%s|%d|%s|%s",
		string(digits[:]), in.CastAt.UnixMilli(), in.Category, in.Method)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// DecodeShareCode reverses ShareCode. Malformed input of any kind returns
// ok=false; decoding never panics and never yields a partial input.
func DecodeShareCode(code string) (CastingInput, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return CastingInput{}, false
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != shareCodeFields {
		return CastingInput{}, false
	}

	if len(parts[0]) != 6 {
		return CastingInput{}, false
	}
	var draws [6]DrawValue
	for i := 0; i < 6; i++ {
		d := DrawValue(parts[0][i] - '0')
		if !d.Valid() {
			return CastingInput{}, false
		}
		draws[i] = d
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return CastingInput{}, false
	}

	category := Category(parts[2])
	if !category.Valid() {
		return CastingInput{}, false
	}
	method := CastingMethod(parts[3])
	if !method.Valid() {
		return CastingInput{}, false
	}

	return CastingInput{
		Method:   method,
		Draws:    draws,
		CastAt:   time.UnixMilli(millis).UTC(),
		Category: category,
	}, true
}
