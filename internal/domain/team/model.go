package team

import "fmt"

// Team is a registered competition team inside one event bracket.
type Team struct {
	ID       string
	EventID  string
	StageID  string
	Name     string
	TeamSize int
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.EventID == "" {
		return fmt.Errorf("team event id is required")
	}
	if t.StageID == "" {
		return fmt.Errorf("team stage id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.TeamSize < 2 || t.TeamSize > 6 {
		return fmt.Errorf("team size must be between 2 and 6")
	}

	return nil
}

// Member is one player on a team's roster. DisplayName is the name the
// upstream game site shows in replay exports, so roster checks compare
// against it rather than the user id.
type Member struct {
	TeamID      string
	UserID      string
	DisplayName string
}

func (m Member) Validate() error {
	if m.TeamID == "" {
		return fmt.Errorf("member team id is required")
	}
	if m.UserID == "" {
		return fmt.Errorf("member user id is required")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("member display name is required")
	}

	return nil
}
