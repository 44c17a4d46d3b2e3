package postgres

import (
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/template"
)

type templateTableModel struct {
	ID         string    `db:"id"`
	EventID    string    `db:"event_id"`
	StageID    string    `db:"stage_id"`
	Name       string    `db:"name"`
	Variant    string    `db:"variant"`
	SeedSuffix string    `db:"seed_suffix"`
	Ordering   int       `db:"ordering"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m templateTableModel) toDomain() template.Template {
	return template.Template{
		ID:         m.ID,
		EventID:    m.EventID,
		StageID:    m.StageID,
		Name:       m.Name,
		Variant:    m.Variant,
		SeedSuffix: m.SeedSuffix,
		Ordering:   m.Ordering,
	}
}
