package gameresult

import (
	"fmt"
	"time"
)

// Result is a validated game recorded for one (team, template) pair. At
// most one result per pair; a re-submission is a conflict, not an update.
type Result struct {
	ID           string
	EventTeamID  string
	TemplateID   string
	MatchID      string
	Score        *int
	EndCondition *int
	PlayedAt     *time.Time
	Players      []string
	SubmittedBy  string
	CreatedAt    time.Time
}

func (r Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("result id is required")
	}
	if r.EventTeamID == "" {
		return fmt.Errorf("result team id is required")
	}
	if r.TemplateID == "" {
		return fmt.Errorf("result template id is required")
	}
	if r.MatchID == "" {
		return fmt.Errorf("result match id is required")
	}

	return nil
}
