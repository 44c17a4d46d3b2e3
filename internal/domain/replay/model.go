// Package replay holds the pure pieces of replay verification: reference and
// seed parsing, the validation result, and the typed failure taxonomy.
package replay

import (
	"fmt"
	"strings"
	"time"
)

// FailureCode is the machine-readable finding attached to a failed
// validation so clients can explain exactly what was wrong.
type FailureCode string

const (
	CodeBadReference       FailureCode = "BAD_REFERENCE"
	CodeCrossEventMismatch FailureCode = "CROSS_EVENT_MISMATCH"
	CodeForeignPlayers     FailureCode = "FOREIGN_PLAYERS"
	CodeMalformedSeed      FailureCode = "MALFORMED_SEED"
	CodeSizeMismatch       FailureCode = "SIZE_MISMATCH"
	CodeSeedMismatch       FailureCode = "SEED_MISMATCH"
	CodeVariantMismatch    FailureCode = "VARIANT_MISMATCH"
	CodeUnsupportedRules   FailureCode = "UNSUPPORTED_RULES"
)

// Pipeline step labels. Every validation failure names the step it was
// raised at so operators can locate the failure without a stack trace.
const (
	StepParseReference = "parse_reference"
	StepLoadTeam       = "load_team"
	StepLoadTemplate   = "load_template"
	StepLoadRoster     = "load_roster"
	StepFetchExport    = "fetch_export"
	StepCheckRoster    = "check_roster"
	StepParseSeed      = "parse_seed"
	StepCheckSize      = "check_size"
	StepCheckSeed      = "check_seed"
	StepFetchHistory   = "fetch_history"
	StepCheckVariant   = "check_variant"
	StepCheckRules     = "check_rules"
)

// ValidationError is an integrity finding: the submitted replay does not
// prove a legitimate game. It is a user-facing rejection, not a system
// fault.
type ValidationError struct {
	Code   FailureCode
	Step   string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("replay validation failed at %s: %s", e.Step, e.Code)
	}
	return fmt.Sprintf("replay validation failed at %s: %s: %s", e.Step, e.Code, e.Detail)
}

// ValidationResult is the outcome of one successful validation, scoped to
// the caller's request. Score, end condition and played-at come from match
// history and stay nil when the history lookup found nothing.
type ValidationResult struct {
	MatchID      string
	Players      []string
	Seed         string
	SeedSuffix   string
	PlayerCount  int
	Variant      string
	Score        *int
	EndCondition *int
	PlayedAt     *time.Time
}

// Export is a match export fetched from the game service: who played and on
// which seed.
type Export struct {
	MatchID string
	Players []string
	Seed    string
}

// HistoryGame is one entry of a player's match history.
type HistoryGame struct {
	ID           int64
	Variant      string
	Score        int
	EndCondition int
	PlayedAt     time.Time
	Options      GameOptions
}

// GameOptions are the optional-rule flags a game may have been played with.
// Competition games must be vanilla: every flag false or absent.
type GameOptions struct {
	CardCycle             bool
	DeckPlays             bool
	EmptyClues            bool
	OneExtraCard          bool
	OneLessCard           bool
	AllOrNothing          bool
	DetrimentalCharacters bool
}

// Violations lists the names of the flags that are set.
func (o GameOptions) Violations() []string {
	var out []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"cardCycle", o.CardCycle},
		{"deckPlays", o.DeckPlays},
		{"emptyClues", o.EmptyClues},
		{"oneExtraCard", o.OneExtraCard},
		{"oneLessCard", o.OneLessCard},
		{"allOrNothing", o.AllOrNothing},
		{"detrimentalCharacters", o.DetrimentalCharacters},
	} {
		if f.set {
			out = append(out, f.name)
		}
	}
	return out
}

func (o GameOptions) String() string {
	v := o.Violations()
	if len(v) == 0 {
		return "vanilla"
	}
	return strings.Join(v, ",")
}
