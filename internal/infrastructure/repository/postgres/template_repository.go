package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanabarena/hanab-arena/internal/domain/template"
	qb "github.com/hanabarena/hanab-arena/internal/platform/querybuilder"
)

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) GetByID(ctx context.Context, templateID string) (template.Template, bool, error) {
	query, args, err := qb.Select("*").From("seed_templates").
		Where(qb.Eq("id", templateID)).
		ToSQL()
	if err != nil {
		return template.Template{}, false, fmt.Errorf("build get template by id query: %w", err)
	}

	var row templateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return template.Template{}, false, nil
		}
		return template.Template{}, false, fmt.Errorf("get template by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TemplateRepository) ListByStage(ctx context.Context, stageID string) ([]template.Template, error) {
	query, args, err := qb.Select("*").From("seed_templates").
		Where(qb.Eq("stage_id", stageID)).
		OrderBy("ordering", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stage templates query: %w", err)
	}

	var rows []templateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stage templates: %w", err)
	}

	out := make([]template.Template, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
