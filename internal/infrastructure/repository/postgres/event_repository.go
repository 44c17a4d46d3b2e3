package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanabarena/hanab-arena/internal/domain/event"
	qb "github.com/hanabarena/hanab-arena/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select("*").From("events").
		Where(
			qb.Eq("id", eventID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event by id query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *EventRepository) GetStageByID(ctx context.Context, stageID string) (event.Stage, bool, error) {
	query, args, err := qb.Select("*").From("event_stages").
		Where(qb.Eq("id", stageID)).
		ToSQL()
	if err != nil {
		return event.Stage{}, false, fmt.Errorf("build get stage by id query: %w", err)
	}

	var row stageTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Stage{}, false, nil
		}
		return event.Stage{}, false, fmt.Errorf("get stage by id: %w", err)
	}
	return row.toDomain(), true, nil
}
