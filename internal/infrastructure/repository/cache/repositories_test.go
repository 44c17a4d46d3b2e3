package cache

import (
	"context"
	"testing"
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/infrastructure/repository/memory"
	basecache "github.com/hanabarena/hanab-arena/internal/platform/cache"
)

type countingTeamRepo struct {
	*memory.TeamRepository
	listCalls int
}

func (r *countingTeamRepo) ListMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	r.listCalls++
	return r.TeamRepository.ListMembers(ctx, teamID)
}

func TestTeamRepository_ListMembersCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &countingTeamRepo{TeamRepository: memory.NewTeamRepository(memory.SeedTeams(), memory.SeedMembers())}
	repo := NewTeamRepository(inner, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		members, err := repo.ListMembers(ctx, memory.TeamIDFireworks)
		if err != nil {
			t.Fatalf("list members: %v", err)
		}
		if len(members) != 3 {
			t.Fatalf("members = %d, want 3", len(members))
		}
	}
	if inner.listCalls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.listCalls)
	}
}

func TestTeamRepository_AddMemberInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &countingTeamRepo{TeamRepository: memory.NewTeamRepository(memory.SeedTeams(), memory.SeedMembers())}
	repo := NewTeamRepository(inner, basecache.NewStore(time.Minute))

	if _, err := repo.ListMembers(ctx, memory.TeamIDFireworks); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if err := repo.AddMember(ctx, team.Member{TeamID: memory.TeamIDFireworks, UserID: "u-grace", DisplayName: "grace"}); err != nil {
		t.Fatalf("add member: %v", err)
	}

	members, err := repo.ListMembers(ctx, memory.TeamIDFireworks)
	if err != nil {
		t.Fatalf("list after add: %v", err)
	}
	if len(members) != 4 {
		t.Fatalf("members = %d, want 4 after invalidation", len(members))
	}
	if inner.listCalls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.listCalls)
	}
}

func TestTemplateRepository_GetByIDCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTemplateRepository(memory.NewTemplateRepository(memory.SeedTemplates()), basecache.NewStore(time.Minute))

	item, exists, err := repo.GetByID(ctx, "tpl-1")
	if err != nil || !exists {
		t.Fatalf("get template: exists=%v err=%v", exists, err)
	}
	if item.SeedSuffix != "4a9X2" {
		t.Fatalf("template: %+v", item)
	}

	if _, exists, err := repo.GetByID(ctx, "tpl-ghost"); err != nil || exists {
		t.Fatalf("missing template: exists=%v err=%v", exists, err)
	}
}
