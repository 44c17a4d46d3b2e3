package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
	"github.com/hanabarena/hanab-arena/internal/domain/event"
	"github.com/hanabarena/hanab-arena/internal/domain/user"
)

// GateReason is the machine-readable explanation attached to a spoiler gate
// denial.
type GateReason string

const (
	GateReasonLoginRequired   GateReason = "LOGIN_REQUIRED"
	GateReasonEnrolled        GateReason = "ENROLLED"
	GateReasonRequiresForfeit GateReason = "REQUIRES_FORFEIT"
)

// GateVerdict is the full outcome of a spoiler gate check. HTTPStatus is a
// hint for the transport layer; the verdict itself is transport-agnostic.
type GateVerdict struct {
	Allowed    bool
	Reason     GateReason
	HTTPStatus int
}

func allowVerdict() GateVerdict {
	return GateVerdict{Allowed: true, HTTPStatus: http.StatusOK}
}

func denyVerdict(reason GateReason, status int) GateVerdict {
	return GateVerdict{Reason: reason, HTTPStatus: status}
}

// EligibilityService owns the eligibility state machine: the spoiler gate
// that decides who may read ahead, and explicit forfeiture.
type EligibilityService struct {
	eligibilityRepo eligibility.Repository
	eventRepo       event.Repository
}

func NewEligibilityService(eligibilityRepo eligibility.Repository, eventRepo event.Repository) *EligibilityService {
	return &EligibilityService{eligibilityRepo: eligibilityRepo, eventRepo: eventRepo}
}

// CheckSpoilerGate decides whether viewer may read spoiler-bearing data for
// one bracket of an event. Team members always see their own team; everyone
// else must have burned their eligibility first.
func (s *EligibilityService) CheckSpoilerGate(ctx context.Context, eventID string, teamSize int, viewer *user.Principal, isMember bool) (GateVerdict, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return GateVerdict{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if teamSize <= 0 {
		return GateVerdict{}, fmt.Errorf("%w: team size is required", ErrInvalidInput)
	}

	if isMember {
		return allowVerdict(), nil
	}
	if viewer == nil {
		return denyVerdict(GateReasonLoginRequired, http.StatusUnauthorized), nil
	}

	record, exists, err := s.eligibilityRepo.GetForUser(ctx, eventID, teamSize, viewer.UserID)
	if err != nil {
		return GateVerdict{}, fmt.Errorf("get eligibility record: %w", err)
	}
	if !exists {
		return denyVerdict(GateReasonRequiresForfeit, http.StatusForbidden), nil
	}

	switch record.Status {
	case eligibility.StatusIneligible, eligibility.StatusCompleted:
		return allowVerdict(), nil
	case eligibility.StatusEnrolled:
		return denyVerdict(GateReasonEnrolled, http.StatusForbidden), nil
	default:
		return GateVerdict{}, fmt.Errorf("eligibility record has unknown status %q", record.Status)
	}
}

// ForfeitSpoilers permanently reclassifies the user as ineligible for the
// bracket, unlocking spoiler views. This is the explicit action a
// REQUIRES_FORFEIT denial points at.
func (s *EligibilityService) ForfeitSpoilers(ctx context.Context, eventID string, teamSize int, userID string) (eligibility.Record, error) {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" {
		return eligibility.Record{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if userID == "" {
		return eligibility.Record{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if teamSize <= 0 {
		return eligibility.Record{}, fmt.Errorf("%w: team size is required", ErrInvalidInput)
	}

	// A forfeit is permanent, so refuse to record one against an event that
	// does not exist.
	if _, exists, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return eligibility.Record{}, fmt.Errorf("get event: %w", err)
	} else if !exists {
		return eligibility.Record{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	record, err := s.eligibilityRepo.MarkIneligible(ctx, eventID, teamSize, userID, eligibility.ReasonSpoilerView, nil)
	if err != nil {
		return eligibility.Record{}, fmt.Errorf("mark ineligible: %w", err)
	}
	return record, nil
}

// ListForUser returns the user's eligibility records in an event, ordered by
// team size. teamSize 0 means all brackets.
func (s *EligibilityService) ListForUser(ctx context.Context, eventID, userID string, teamSize int) ([]eligibility.Record, error) {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	records, err := s.eligibilityRepo.ListForUser(ctx, eventID, userID, teamSize)
	if err != nil {
		return nil, fmt.Errorf("list eligibility records: %w", err)
	}
	return records, nil
}
