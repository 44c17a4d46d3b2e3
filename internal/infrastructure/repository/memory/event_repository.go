package memory

import (
	"context"
	"sync"

	"github.com/hanabarena/hanab-arena/internal/domain/event"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]event.Event
	stages map[string]event.Stage
}

func NewEventRepository(events []event.Event, stages []event.Stage) *EventRepository {
	eventsByID := make(map[string]event.Event, len(events))
	for _, item := range events {
		eventsByID[item.ID] = item
	}
	stagesByID := make(map[string]event.Stage, len(stages))
	for _, item := range stages {
		stagesByID[item.ID] = item
	}
	return &EventRepository{events: eventsByID, stages: stagesByID}
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.events[eventID]
	return item, ok, nil
}

func (r *EventRepository) GetStageByID(_ context.Context, stageID string) (event.Stage, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stages[stageID]
	return item, ok, nil
}
