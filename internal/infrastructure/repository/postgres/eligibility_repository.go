package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
	"github.com/hanabarena/hanab-arena/internal/platform/id"
	qb "github.com/hanabarena/hanab-arena/internal/platform/querybuilder"
)

// EligibilityRepository persists bracket eligibility with the merge rules the
// domain interface documents. Conflicts on (event_id, user_id, team_size) are
// resolved inside the INSERT statements, so concurrent enrollments and
// forfeits converge without application locks.
type EligibilityRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

func NewEligibilityRepository(db *sqlx.DB, idGen id.Generator) *EligibilityRepository {
	return &EligibilityRepository{db: db, idGen: idGen}
}

func (r *EligibilityRepository) UpsertEnrolledIfMissing(ctx context.Context, eventID string, teamSize int, userID string, sourceTeamID *string) (eligibility.Record, error) {
	recordID, err := r.idGen.NewID()
	if err != nil {
		return eligibility.Record{}, fmt.Errorf("generate eligibility id: %w", err)
	}

	const insertQuery = `
INSERT INTO arena_eligibility (id, event_id, user_id, team_size, status, source_event_team_id, status_reason, changed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (event_id, user_id, team_size) DO NOTHING`

	reason := eligibility.NormalizeReason("", eligibility.ReasonRegistered)
	if _, err := r.db.ExecContext(ctx, insertQuery,
		recordID, eventID, userID, teamSize,
		string(eligibility.StatusEnrolled), nullableString(sourceTeamID), reason,
	); err != nil {
		return eligibility.Record{}, fmt.Errorf("upsert enrolled eligibility: %w", err)
	}

	// Whether this call inserted or lost the conflict, the stored row is the
	// answer: an existing record is returned unchanged.
	record, exists, err := r.GetForUser(ctx, eventID, teamSize, userID)
	if err != nil {
		return eligibility.Record{}, err
	}
	if !exists {
		return eligibility.Record{}, fmt.Errorf("eligibility record missing after upsert: event=%s user=%s", eventID, userID)
	}
	return record, nil
}

func (r *EligibilityRepository) MarkIneligible(ctx context.Context, eventID string, teamSize int, userID, reason string, sourceTeamID *string) (eligibility.Record, error) {
	reason = eligibility.NormalizeReason(reason, eligibility.ReasonSpoilerView)
	return r.mark(ctx, eventID, teamSize, userID, eligibility.StatusIneligible, reason, sourceTeamID)
}

func (r *EligibilityRepository) MarkCompleted(ctx context.Context, eventID string, teamSize int, userID, reason string) (eligibility.Record, error) {
	reason = eligibility.NormalizeReason(reason, eligibility.ReasonCompleted)
	return r.mark(ctx, eventID, teamSize, userID, eligibility.StatusCompleted, reason, nil)
}

// mark force-sets the status. Source team and reason follow first-write-wins:
// the COALESCE keeps whatever an earlier write recorded and only fills the
// columns when they are still empty.
func (r *EligibilityRepository) mark(ctx context.Context, eventID string, teamSize int, userID string, status eligibility.Status, reason string, sourceTeamID *string) (eligibility.Record, error) {
	recordID, err := r.idGen.NewID()
	if err != nil {
		return eligibility.Record{}, fmt.Errorf("generate eligibility id: %w", err)
	}

	const markQuery = `
INSERT INTO arena_eligibility (id, event_id, user_id, team_size, status, source_event_team_id, status_reason, changed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (event_id, user_id, team_size) DO UPDATE SET
    status = EXCLUDED.status,
    source_event_team_id = COALESCE(arena_eligibility.source_event_team_id, EXCLUDED.source_event_team_id),
    status_reason = COALESCE(NULLIF(arena_eligibility.status_reason, ''), EXCLUDED.status_reason),
    changed_at = NOW()
RETURNING id, event_id, user_id, team_size, status, source_event_team_id, status_reason, changed_at, created_at`

	var row eligibilityTableModel
	if err := r.db.GetContext(ctx, &row, markQuery,
		recordID, eventID, userID, teamSize,
		string(status), nullableString(sourceTeamID), reason,
	); err != nil {
		return eligibility.Record{}, fmt.Errorf("mark eligibility %s: %w", status, err)
	}
	return row.toDomain(), nil
}

func (r *EligibilityRepository) GetForUser(ctx context.Context, eventID string, teamSize int, userID string) (eligibility.Record, bool, error) {
	query, args, err := qb.Select("*").From("arena_eligibility").
		Where(
			qb.Eq("event_id", eventID),
			qb.Eq("team_size", teamSize),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return eligibility.Record{}, false, fmt.Errorf("build get eligibility query: %w", err)
	}

	var row eligibilityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return eligibility.Record{}, false, nil
		}
		return eligibility.Record{}, false, fmt.Errorf("get eligibility record: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EligibilityRepository) FindForUsers(ctx context.Context, eventID string, teamSize int, userIDs []string) ([]eligibility.UserRecord, error) {
	if len(userIDs) == 0 {
		return []eligibility.UserRecord{}, nil
	}

	// Display names live on rosters, not on a user table the arena owns. Any
	// membership in the same event carries the player's game-site name.
	const query = `
SELECT e.id, e.event_id, e.user_id, e.team_size, e.status,
       e.source_event_team_id, e.status_reason, e.changed_at, e.created_at,
       m.display_name
FROM arena_eligibility e
LEFT JOIN LATERAL (
    SELECT mm.display_name
    FROM event_team_members mm
    JOIN event_teams t ON t.id = mm.team_id
    WHERE mm.user_id = e.user_id
      AND t.event_id = e.event_id
    LIMIT 1
) m ON TRUE
WHERE e.event_id = $1
  AND e.team_size = $2
  AND e.user_id = ANY($3)
ORDER BY e.user_id`

	var rows []eligibilityUserTableModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID, teamSize, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("find eligibility records for users: %w", err)
	}

	out := make([]eligibility.UserRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EligibilityRepository) ListForUser(ctx context.Context, eventID, userID string, teamSize int) ([]eligibility.Record, error) {
	conditions := []qb.Condition{
		qb.Eq("event_id", eventID),
		qb.Eq("user_id", userID),
	}
	if teamSize > 0 {
		conditions = append(conditions, qb.Eq("team_size", teamSize))
	}

	query, args, err := qb.Select("*").From("arena_eligibility").
		Where(conditions...).
		OrderBy("team_size ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list eligibility query: %w", err)
	}

	var rows []eligibilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list eligibility records: %w", err)
	}

	out := make([]eligibility.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
