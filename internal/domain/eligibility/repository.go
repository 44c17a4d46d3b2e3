package eligibility

import "context"

// Repository describes eligibility persistence needs from use cases.
//
// The write operations implement insert-or-merge semantics: concurrent
// writes for the same (event, user, team size) triple must converge on a
// single row without blind overwrites. Implementations resolve conflicts at
// the storage layer, not with application locks.
type Repository interface {
	// UpsertEnrolledIfMissing inserts an ENROLLED record with reason
	// "registered". If a record already exists it is returned unchanged,
	// whatever its status. Idempotent.
	UpsertEnrolledIfMissing(ctx context.Context, eventID string, teamSize int, userID string, sourceTeamID *string) (Record, error)

	// MarkIneligible force-sets status INELIGIBLE. On an existing record the
	// original source team and reason are preserved when already set (first
	// write wins). Empty reason defaults to "spoiler_view".
	MarkIneligible(ctx context.Context, eventID string, teamSize int, userID, reason string, sourceTeamID *string) (Record, error)

	// MarkCompleted is MarkIneligible's merge discipline with status
	// COMPLETED and default reason "completed".
	MarkCompleted(ctx context.Context, eventID string, teamSize int, userID, reason string) (Record, error)

	// GetForUser returns the record for one (event, team size, user) triple.
	GetForUser(ctx context.Context, eventID string, teamSize int, userID string) (Record, bool, error)

	// FindForUsers batch-loads records joined with display names. An empty
	// userIDs slice returns an empty result without a query round-trip.
	FindForUsers(ctx context.Context, eventID string, teamSize int, userIDs []string) ([]UserRecord, error)

	// ListForUser returns a user's records in an event ordered by team size
	// ascending. teamSize 0 means all brackets.
	ListForUser(ctx context.Context, eventID, userID string, teamSize int) ([]Record, error)
}
