package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
)

// EligibilityRepository keeps eligibility records in memory with the same
// merge discipline as the Postgres implementation: idempotent enrollment,
// force-set mark operations, first-write-wins on source team and reason.
type EligibilityRepository struct {
	mu           sync.Mutex
	records      map[string]eligibility.Record
	displayNames map[string]string
	nextID       int
	now          func() time.Time
}

func NewEligibilityRepository(displayNames map[string]string) *EligibilityRepository {
	if displayNames == nil {
		displayNames = map[string]string{}
	}
	return &EligibilityRepository{
		records:      make(map[string]eligibility.Record),
		displayNames: displayNames,
		now:          time.Now,
	}
}

func recordKey(eventID string, teamSize int, userID string) string {
	return fmt.Sprintf("%s|%d|%s", eventID, teamSize, userID)
}

func (r *EligibilityRepository) UpsertEnrolledIfMissing(_ context.Context, eventID string, teamSize int, userID string, sourceTeamID *string) (eligibility.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(eventID, teamSize, userID)
	if existing, ok := r.records[key]; ok {
		return existing, nil
	}

	now := r.now().UTC()
	r.nextID++
	record := eligibility.Record{
		ID:                fmt.Sprintf("elig-%d", r.nextID),
		EventID:           eventID,
		UserID:            userID,
		TeamSize:          teamSize,
		Status:            eligibility.StatusEnrolled,
		SourceEventTeamID: copyID(sourceTeamID),
		StatusReason:      eligibility.ReasonRegistered,
		ChangedAt:         now,
		CreatedAt:         now,
	}
	r.records[key] = record
	return record, nil
}

func (r *EligibilityRepository) MarkIneligible(_ context.Context, eventID string, teamSize int, userID, reason string, sourceTeamID *string) (eligibility.Record, error) {
	return r.mark(eventID, teamSize, userID, eligibility.StatusIneligible,
		eligibility.NormalizeReason(reason, eligibility.ReasonSpoilerView), sourceTeamID)
}

func (r *EligibilityRepository) MarkCompleted(_ context.Context, eventID string, teamSize int, userID, reason string) (eligibility.Record, error) {
	return r.mark(eventID, teamSize, userID, eligibility.StatusCompleted,
		eligibility.NormalizeReason(reason, eligibility.ReasonCompleted), nil)
}

func (r *EligibilityRepository) mark(eventID string, teamSize int, userID string, status eligibility.Status, reason string, sourceTeamID *string) (eligibility.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(eventID, teamSize, userID)
	now := r.now().UTC()

	existing, ok := r.records[key]
	if !ok {
		r.nextID++
		record := eligibility.Record{
			ID:                fmt.Sprintf("elig-%d", r.nextID),
			EventID:           eventID,
			UserID:            userID,
			TeamSize:          teamSize,
			Status:            status,
			SourceEventTeamID: copyID(sourceTeamID),
			StatusReason:      reason,
			ChangedAt:         now,
			CreatedAt:         now,
		}
		r.records[key] = record
		return record, nil
	}

	existing.Status = status
	existing.ChangedAt = now
	if existing.SourceEventTeamID == nil {
		existing.SourceEventTeamID = copyID(sourceTeamID)
	}
	if existing.StatusReason == "" {
		existing.StatusReason = reason
	}
	r.records[key] = existing
	return existing, nil
}

func (r *EligibilityRepository) GetForUser(_ context.Context, eventID string, teamSize int, userID string) (eligibility.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[recordKey(eventID, teamSize, userID)]
	return record, ok, nil
}

func (r *EligibilityRepository) FindForUsers(_ context.Context, eventID string, teamSize int, userIDs []string) ([]eligibility.UserRecord, error) {
	if len(userIDs) == 0 {
		return []eligibility.UserRecord{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]eligibility.UserRecord, 0, len(userIDs))
	for _, userID := range userIDs {
		record, ok := r.records[recordKey(eventID, teamSize, userID)]
		if !ok {
			continue
		}
		out = append(out, eligibility.UserRecord{
			Record:      record,
			DisplayName: r.displayNames[userID],
		})
	}
	return out, nil
}

func (r *EligibilityRepository) ListForUser(_ context.Context, eventID, userID string, teamSize int) ([]eligibility.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]eligibility.Record, 0, 4)
	for _, record := range r.records {
		if record.EventID != eventID || record.UserID != userID {
			continue
		}
		if teamSize > 0 && record.TeamSize != teamSize {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamSize < out[j].TeamSize })
	return out, nil
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
