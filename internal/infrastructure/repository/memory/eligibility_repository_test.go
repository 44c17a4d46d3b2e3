package memory

import (
	"context"
	"testing"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
)

func TestEligibilityRepository_UpsertEnrolledIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(nil)
	ctx := context.Background()
	teamID := TeamIDFireworks

	first, err := repo.UpsertEnrolledIfMissing(ctx, EventIDSpringArena, 3, "u-alice", &teamID)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Status != eligibility.StatusEnrolled || first.StatusReason != eligibility.ReasonRegistered {
		t.Fatalf("first record: %+v", first)
	}

	second, err := repo.UpsertEnrolledIfMissing(ctx, EventIDSpringArena, 3, "u-alice", nil)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second != first {
		t.Fatalf("second upsert changed the record:\n first %+v\nsecond %+v", first, second)
	}
}

func TestEligibilityRepository_UpsertNeverRegressesTerminalStatus(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(nil)
	ctx := context.Background()

	if _, err := repo.MarkIneligible(ctx, EventIDSpringArena, 3, "u-bob", "", nil); err != nil {
		t.Fatalf("mark ineligible: %v", err)
	}

	record, err := repo.UpsertEnrolledIfMissing(ctx, EventIDSpringArena, 3, "u-bob", nil)
	if err != nil {
		t.Fatalf("upsert after forfeit: %v", err)
	}
	if record.Status != eligibility.StatusIneligible {
		t.Fatalf("status regressed to %s", record.Status)
	}
}

func TestEligibilityRepository_MarkIneligibleFirstReasonWins(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(nil)
	ctx := context.Background()
	teamID := TeamIDFireworks

	first, err := repo.MarkIneligible(ctx, EventIDSpringArena, 3, "u-carol", "viewed stats page", &teamID)
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}

	second, err := repo.MarkIneligible(ctx, EventIDSpringArena, 3, "u-carol", "another reason", nil)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if second.StatusReason != "viewed stats page" {
		t.Fatalf("reason overwritten: %q", second.StatusReason)
	}
	if second.SourceEventTeamID == nil || *second.SourceEventTeamID != *first.SourceEventTeamID {
		t.Fatal("source team overwritten")
	}
}

func TestEligibilityRepository_MarkDefaultsReason(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(nil)
	ctx := context.Background()

	forfeit, err := repo.MarkIneligible(ctx, EventIDSpringArena, 4, "u-dave", "", nil)
	if err != nil {
		t.Fatalf("mark ineligible: %v", err)
	}
	if forfeit.StatusReason != eligibility.ReasonSpoilerView {
		t.Fatalf("forfeit reason: %q", forfeit.StatusReason)
	}

	done, err := repo.MarkCompleted(ctx, EventIDSpringArena, 3, "u-erin", "")
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if done.StatusReason != eligibility.ReasonCompleted {
		t.Fatalf("completed reason: %q", done.StatusReason)
	}
}

func TestEligibilityRepository_FindForUsers(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(map[string]string{"u-alice": "alice"})
	ctx := context.Background()

	empty, err := repo.FindForUsers(ctx, EventIDSpringArena, 3, nil)
	if err != nil {
		t.Fatalf("find with empty input: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result, got %v", empty)
	}

	if _, err := repo.UpsertEnrolledIfMissing(ctx, EventIDSpringArena, 3, "u-alice", nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	records, err := repo.FindForUsers(ctx, EventIDSpringArena, 3, []string{"u-alice", "u-missing"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(records) != 1 || records[0].DisplayName != "alice" {
		t.Fatalf("records: %+v", records)
	}
}

func TestEligibilityRepository_ListForUserOrdersByTeamSize(t *testing.T) {
	t.Parallel()

	repo := NewEligibilityRepository(nil)
	ctx := context.Background()

	for _, size := range []int{5, 3, 4} {
		if _, err := repo.UpsertEnrolledIfMissing(ctx, EventIDSpringArena, size, "u-frank", nil); err != nil {
			t.Fatalf("upsert size %d: %v", size, err)
		}
	}

	all, err := repo.ListForUser(ctx, EventIDSpringArena, "u-frank", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].TeamSize != 3 || all[2].TeamSize != 5 {
		t.Fatalf("ordering: %+v", all)
	}

	one, err := repo.ListForUser(ctx, EventIDSpringArena, "u-frank", 4)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(one) != 1 || one[0].TeamSize != 4 {
		t.Fatalf("filtered: %+v", one)
	}
}
