package event

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	GetStageByID(ctx context.Context, stageID string) (Stage, bool, error)
}
