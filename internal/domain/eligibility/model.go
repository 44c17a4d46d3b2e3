// Package eligibility tracks, per event bracket, whether a player may still
// view spoiler-bearing content. A record exists once a player enrolls,
// forfeits, or completes play for a (event, team size) pair, and its status
// only ever moves forward.
package eligibility

import (
	"fmt"
	"time"
)

// Status is a point in the forward-only lattice
// (none) -> ENROLLED -> INELIGIBLE | COMPLETED.
type Status string

const (
	StatusEnrolled   Status = "ENROLLED"
	StatusIneligible Status = "INELIGIBLE"
	StatusCompleted  Status = "COMPLETED"
)

// Terminal reports whether the status can no longer change. Forfeiture and
// completion are durable commitments; enrollment is soft.
func (s Status) Terminal() bool {
	return s == StatusIneligible || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusEnrolled, StatusIneligible, StatusCompleted:
		return true
	}
	return false
}

// Default reasons recorded when the caller supplies none.
const (
	ReasonRegistered  = "registered"
	ReasonSpoilerView = "spoiler_view"
	ReasonCompleted   = "completed"
)

const maxReasonLen = 255

// NormalizeReason substitutes fallback for an empty reason and truncates the
// result to the column limit.
func NormalizeReason(reason, fallback string) string {
	if reason == "" {
		reason = fallback
	}
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen]
	}
	return reason
}

// Record is one player's standing in one bracket of one event. At most one
// record exists per (event, user, team size) triple.
type Record struct {
	ID                string
	EventID           string
	UserID            string
	TeamSize          int
	Status            Status
	SourceEventTeamID *string
	StatusReason      string
	ChangedAt         time.Time
	CreatedAt         time.Time
}

func (r Record) Validate() error {
	if r.EventID == "" {
		return fmt.Errorf("eligibility event id is required")
	}
	if r.UserID == "" {
		return fmt.Errorf("eligibility user id is required")
	}
	if r.TeamSize < 2 || r.TeamSize > 6 {
		return fmt.Errorf("eligibility team size must be between 2 and 6")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("eligibility status %q is unknown", r.Status)
	}

	return nil
}

// UserRecord is a Record joined with the player's display name for batch
// roster views.
type UserRecord struct {
	Record
	DisplayName string
}
