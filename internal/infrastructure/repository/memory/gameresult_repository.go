package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
)

type GameResultRepository struct {
	mu      sync.RWMutex
	results []gameresult.Result
	// eventID by team, so ListByEvent works without a team repository.
	eventByTeam map[string]string
}

func NewGameResultRepository(eventByTeam map[string]string) *GameResultRepository {
	if eventByTeam == nil {
		eventByTeam = map[string]string{}
	}
	return &GameResultRepository{eventByTeam: eventByTeam}
}

func (r *GameResultRepository) Insert(_ context.Context, result gameresult.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.results {
		if item.EventTeamID == result.EventTeamID && item.TemplateID == result.TemplateID {
			return fmt.Errorf("%w: team=%s template=%s", gameresult.ErrDuplicate, result.EventTeamID, result.TemplateID)
		}
	}
	r.results = append(r.results, result)
	return nil
}

func (r *GameResultRepository) ListByTeam(_ context.Context, eventTeamID string) ([]gameresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameresult.Result, 0, 4)
	for _, item := range r.results {
		if item.EventTeamID == eventTeamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GameResultRepository) ListByEvent(_ context.Context, eventID string) ([]gameresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameresult.Result, 0, 8)
	for _, item := range r.results {
		if r.eventByTeam[item.EventTeamID] == eventID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
