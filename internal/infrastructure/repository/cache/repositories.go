// Package cache decorates repositories with a read-through TTL cache. Teams,
// rosters and seed templates barely change during an event, and every gated
// read hits all three.
package cache

import (
	"context"

	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
	basecache "github.com/hanabarena/hanab-arena/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:id:"+teamID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	v, err := r.cache.GetOrLoad(ctx, teamMembersKey(teamID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]team.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Member)
	return append([]team.Member(nil), items...), nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamMemberKey(teamID, userID), func(ctx context.Context) (any, error) {
		return r.next.IsMember(ctx, teamID, userID)
	})
	if err != nil {
		return false, err
	}

	isMember, _ := v.(bool)
	return isMember, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, member team.Member) error {
	if err := r.next.AddMember(ctx, member); err != nil {
		return err
	}

	r.cache.Delete(ctx, teamMembersKey(member.TeamID))
	r.cache.Delete(ctx, teamMemberKey(member.TeamID, member.UserID))
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func teamMembersKey(teamID string) string {
	return "team:members:" + teamID
}

func teamMemberKey(teamID, userID string) string {
	return "team:member:" + teamID + ":user:" + userID
}

type TemplateRepository struct {
	next  template.Repository
	cache *basecache.Store
}

func NewTemplateRepository(next template.Repository, cache *basecache.Store) *TemplateRepository {
	return &TemplateRepository{next: next, cache: cache}
}

func (r *TemplateRepository) GetByID(ctx context.Context, templateID string) (template.Template, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "template:id:"+templateID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, templateID)
		if err != nil {
			return nil, err
		}
		return cachedTemplateByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return template.Template{}, false, err
	}

	cached, _ := v.(cachedTemplateByID)
	return cached.value, cached.exists, nil
}

func (r *TemplateRepository) ListByStage(ctx context.Context, stageID string) ([]template.Template, error) {
	v, err := r.cache.GetOrLoad(ctx, "template:stage:"+stageID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByStage(ctx, stageID)
		if err != nil {
			return nil, err
		}
		return append([]template.Template(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]template.Template)
	return append([]template.Template(nil), items...), nil
}

type cachedTemplateByID struct {
	value  template.Template
	exists bool
}
