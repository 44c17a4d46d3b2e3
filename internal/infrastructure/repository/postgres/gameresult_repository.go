package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	qb "github.com/hanabarena/hanab-arena/internal/platform/querybuilder"
)

type GameResultRepository struct {
	db *sqlx.DB
}

func NewGameResultRepository(db *sqlx.DB) *GameResultRepository {
	return &GameResultRepository{db: db}
}

// Insert records a validated result. The unique index on
// (event_team_id, template_id) is the authority on duplicates; a violation
// surfaces as gameresult.ErrDuplicate rather than a storage error.
func (r *GameResultRepository) Insert(ctx context.Context, result gameresult.Result) error {
	query, args, err := qb.InsertInto("game_results").
		Columns("id", "event_team_id", "template_id", "match_id", "score", "end_condition", "played_at", "players", "submitted_by").
		Values(
			result.ID,
			result.EventTeamID,
			result.TemplateID,
			result.MatchID,
			nullableInt(result.Score),
			nullableInt(result.EndCondition),
			result.PlayedAt,
			pq.StringArray(result.Players),
			result.SubmittedBy,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert game result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: team=%s template=%s", gameresult.ErrDuplicate, result.EventTeamID, result.TemplateID)
		}
		return fmt.Errorf("insert game result: %w", err)
	}
	return nil
}

func (r *GameResultRepository) ListByTeam(ctx context.Context, eventTeamID string) ([]gameresult.Result, error) {
	query, args, err := qb.Select("*").From("game_results").
		Where(qb.Eq("event_team_id", eventTeamID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team results query: %w", err)
	}

	var rows []gameResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team results: %w", err)
	}
	return toDomainResults(rows), nil
}

func (r *GameResultRepository) ListByEvent(ctx context.Context, eventID string) ([]gameresult.Result, error) {
	const query = `
SELECT g.id, g.event_team_id, g.template_id, g.match_id, g.score,
       g.end_condition, g.played_at, g.players, g.submitted_by, g.created_at
FROM game_results g
JOIN event_teams t ON t.id = g.event_team_id
WHERE t.event_id = $1
ORDER BY g.created_at, g.id`

	var rows []gameResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("list event results: %w", err)
	}
	return toDomainResults(rows), nil
}

func toDomainResults(rows []gameResultTableModel) []gameresult.Result {
	out := make([]gameresult.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
