package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanabarena/hanab-arena/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo event into an empty database so a fresh
// deployment has something to click through. It is a no-op once any event
// exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM events WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count events for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, e := range memory.SeedEvents() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO events (id, name, starts_at, ends_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Name, e.StartsAt, e.EndsAt,
		); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	for _, s := range memory.SeedStages() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO event_stages (id, event_id, name, team_size, ordering)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`,
			s.ID, s.EventID, s.Name, s.TeamSize, s.Ordering,
		); err != nil {
			return fmt.Errorf("seed stage %s: %w", s.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO event_teams (id, event_id, stage_id, name, team_size)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`,
			t.ID, t.EventID, t.StageID, t.Name, t.TeamSize,
		); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMembers() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO event_team_members (team_id, user_id, display_name)
VALUES ($1, $2, $3)
ON CONFLICT (team_id, user_id) DO NOTHING`,
			m.TeamID, m.UserID, m.DisplayName,
		); err != nil {
			return fmt.Errorf("seed team member %s/%s: %w", m.TeamID, m.UserID, err)
		}
	}

	for _, tpl := range memory.SeedTemplates() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO seed_templates (id, event_id, stage_id, name, variant, seed_suffix, ordering)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`,
			tpl.ID, tpl.EventID, tpl.StageID, tpl.Name, tpl.Variant, tpl.SeedSuffix, tpl.Ordering,
		); err != nil {
			return fmt.Errorf("seed template %s: %w", tpl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
