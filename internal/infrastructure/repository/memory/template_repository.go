package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanabarena/hanab-arena/internal/domain/template"
)

type TemplateRepository struct {
	mu    sync.RWMutex
	items map[string]template.Template
}

func NewTemplateRepository(templates []template.Template) *TemplateRepository {
	items := make(map[string]template.Template, len(templates))
	for _, item := range templates {
		items[item.ID] = item
	}
	return &TemplateRepository{items: items}
}

func (r *TemplateRepository) GetByID(_ context.Context, templateID string) (template.Template, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[templateID]
	return item, ok, nil
}

func (r *TemplateRepository) ListByStage(_ context.Context, stageID string) ([]template.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]template.Template, 0, 4)
	for _, item := range r.items {
		if item.StageID == stageID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordering < out[j].Ordering })
	return out, nil
}
