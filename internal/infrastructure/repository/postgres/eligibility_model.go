package postgres

import (
	"database/sql"
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
)

type eligibilityTableModel struct {
	ID                string         `db:"id"`
	EventID           string         `db:"event_id"`
	UserID            string         `db:"user_id"`
	TeamSize          int            `db:"team_size"`
	Status            string         `db:"status"`
	SourceEventTeamID sql.NullString `db:"source_event_team_id"`
	StatusReason      string         `db:"status_reason"`
	ChangedAt         time.Time      `db:"changed_at"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (m eligibilityTableModel) toDomain() eligibility.Record {
	return eligibility.Record{
		ID:                m.ID,
		EventID:           m.EventID,
		UserID:            m.UserID,
		TeamSize:          m.TeamSize,
		Status:            eligibility.Status(m.Status),
		SourceEventTeamID: nullStringPtr(m.SourceEventTeamID),
		StatusReason:      m.StatusReason,
		ChangedAt:         m.ChangedAt,
		CreatedAt:         m.CreatedAt,
	}
}

type eligibilityUserTableModel struct {
	eligibilityTableModel
	DisplayName sql.NullString `db:"display_name"`
}

func (m eligibilityUserTableModel) toDomain() eligibility.UserRecord {
	return eligibility.UserRecord{
		Record:      m.eligibilityTableModel.toDomain(),
		DisplayName: m.DisplayName.String,
	}
}
