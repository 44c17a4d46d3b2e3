package gameresult

import (
	"context"
	"errors"
)

// ErrDuplicate reports that the (team, template) pair already has a
// recorded result.
var ErrDuplicate = errors.New("result already recorded for this template")

// Repository describes game result persistence needs from use cases.
type Repository interface {
	// Insert records a result. A second result for the same
	// (event_team_id, template_id) pair fails with ErrDuplicate.
	Insert(ctx context.Context, result Result) error
	ListByTeam(ctx context.Context, eventTeamID string) ([]Result, error)
	ListByEvent(ctx context.Context, eventID string) ([]Result, error)
}
