package event

import (
	"fmt"
	"time"
)

// Event is one competition run. Teams and templates always hang off a
// specific event; cross-event references are rejected during validation.
type Event struct {
	ID       string
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}

	return nil
}

// Stage groups the templates one bracket plays inside an event.
type Stage struct {
	ID       string
	EventID  string
	Name     string
	TeamSize int
	Ordering int
}

func (s Stage) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("stage id is required")
	}
	if s.EventID == "" {
		return fmt.Errorf("stage event id is required")
	}
	if s.TeamSize < 2 || s.TeamSize > 6 {
		return fmt.Errorf("stage team size must be between 2 and 6")
	}

	return nil
}
