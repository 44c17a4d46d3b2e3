package postgres

import (
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	StageID   string    `db:"stage_id"`
	Name      string    `db:"name"`
	TeamSize  int       `db:"team_size"`
	CreatedAt time.Time `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.ID,
		EventID:  m.EventID,
		StageID:  m.StageID,
		Name:     m.Name,
		TeamSize: m.TeamSize,
	}
}

type teamMemberTableModel struct {
	TeamID      string    `db:"team_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m teamMemberTableModel) toDomain() team.Member {
	return team.Member{
		TeamID:      m.TeamID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
	}
}
