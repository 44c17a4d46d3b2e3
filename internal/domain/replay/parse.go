package replay

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrMalformedSeed reports a seed payload that does not match the
// p<count>v<variant>s<suffix> shape. Ambiguous seeds fail closed.
var ErrMalformedSeed = errors.New("malformed seed payload")

var (
	seedPattern     = regexp.MustCompile(`^p(\d+)v\d+s([A-Za-z0-9]+)`)
	matchRefPattern = regexp.MustCompile(`(?i)(?:replay|shared-replay)/(\d+)`)
	bareIDPattern   = regexp.MustCompile(`^\d+$`)
)

// Seed is the decoded form of a seed payload: how many players the deal is
// for, and the opaque suffix that identifies the exact deal.
type Seed struct {
	PlayerCount int
	Suffix      string
}

// ParseSeed decodes a seed payload. The fixed literals are case-sensitive
// and must appear at the start of the string.
func ParseSeed(s string) (Seed, error) {
	m := seedPattern.FindStringSubmatch(s)
	if m == nil {
		return Seed{}, ErrMalformedSeed
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Seed{}, ErrMalformedSeed
	}
	return Seed{PlayerCount: count, Suffix: m[2]}, nil
}

// ParseMatchID extracts a numeric match id from a raw reference: either a
// replay or shared-replay URL fragment, or an input that is entirely
// digits. Returns "" when neither shape matches; callers treat that as a
// user input error.
func ParseMatchID(input string) string {
	if m := matchRefPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if bareIDPattern.MatchString(input) {
		return input
	}
	return ""
}
