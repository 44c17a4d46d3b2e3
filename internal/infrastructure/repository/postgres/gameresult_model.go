package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
)

type gameResultTableModel struct {
	ID           string         `db:"id"`
	EventTeamID  string         `db:"event_team_id"`
	TemplateID   string         `db:"template_id"`
	MatchID      string         `db:"match_id"`
	Score        sql.NullInt64  `db:"score"`
	EndCondition sql.NullInt64  `db:"end_condition"`
	PlayedAt     sql.NullTime   `db:"played_at"`
	Players      pq.StringArray `db:"players"`
	SubmittedBy  string         `db:"submitted_by"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m gameResultTableModel) toDomain() gameresult.Result {
	return gameresult.Result{
		ID:           m.ID,
		EventTeamID:  m.EventTeamID,
		TemplateID:   m.TemplateID,
		MatchID:      m.MatchID,
		Score:        nullIntPtr(m.Score),
		EndCondition: nullIntPtr(m.EndCondition),
		PlayedAt:     nullableTime(m.PlayedAt),
		Players:      []string(m.Players),
		SubmittedBy:  m.SubmittedBy,
		CreatedAt:    m.CreatedAt,
	}
}
