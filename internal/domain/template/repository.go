package template

import "context"

// Repository describes template persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, templateID string) (Template, bool, error)
	ListByStage(ctx context.Context, stageID string) ([]Template, error)
}
