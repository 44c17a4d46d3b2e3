package postgres

import (
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/event"
)

type eventTableModel struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	StartsAt  time.Time  `db:"starts_at"`
	EndsAt    time.Time  `db:"ends_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:       m.ID,
		Name:     m.Name,
		StartsAt: m.StartsAt,
		EndsAt:   m.EndsAt,
	}
}

type stageTableModel struct {
	ID       string `db:"id"`
	EventID  string `db:"event_id"`
	Name     string `db:"name"`
	TeamSize int    `db:"team_size"`
	Ordering int    `db:"ordering"`
}

func (m stageTableModel) toDomain() event.Stage {
	return event.Stage{
		ID:       m.ID,
		EventID:  m.EventID,
		Name:     m.Name,
		TeamSize: m.TeamSize,
		Ordering: m.Ordering,
	}
}
