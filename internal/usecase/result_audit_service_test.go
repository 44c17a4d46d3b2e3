package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	"github.com/hanabarena/hanab-arena/internal/domain/replay"
	"github.com/hanabarena/hanab-arena/internal/infrastructure/repository/memory"
)

// perMatchChecker routes each match id to a canned verdict, so a single audit
// run can mix passes, findings, and upstream failures.
type perMatchChecker struct {
	mu       sync.Mutex
	verdicts map[string]error
	calls    int
}

func (c *perMatchChecker) ValidateReplay(_ context.Context, _, _, rawRef string) (replay.ValidationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if err, ok := c.verdicts[rawRef]; ok && err != nil {
		return replay.ValidationResult{}, err
	}
	return replay.ValidationResult{MatchID: rawRef}, nil
}

type capturingPublisher struct {
	mu       sync.Mutex
	eventIDs []string
	err      error
}

func (p *capturingPublisher) PublishReaudit(_ context.Context, eventID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.eventIDs = append(p.eventIDs, eventID)
	return nil
}

func seedAuditResults(t *testing.T, matchIDs ...string) *memory.GameResultRepository {
	t.Helper()
	repo := memory.NewGameResultRepository(map[string]string{
		memory.TeamIDFireworks: memory.EventIDSpringArena,
		memory.TeamIDRainbows:  memory.EventIDSpringArena,
	})
	teams := []string{memory.TeamIDFireworks, memory.TeamIDRainbows}
	for i, matchID := range matchIDs {
		err := repo.Insert(context.Background(), gameresult.Result{
			ID:          "result-" + matchID,
			EventTeamID: teams[i%len(teams)],
			TemplateID:  "tpl-" + matchID,
			MatchID:     matchID,
			Players:     []string{"alice", "bob", "carol"},
			SubmittedBy: "u-alice",
		})
		if err != nil {
			t.Fatalf("seed result %s: %v", matchID, err)
		}
	}
	return repo
}

func TestReauditResults_ClassifiesOutcomes(t *testing.T) {
	t.Parallel()

	checker := &perMatchChecker{verdicts: map[string]error{
		"200": &replay.ValidationError{Code: replay.CodeSeedMismatch, Step: replay.StepCheckSeed, Detail: "seed drifted"},
		"300": errors.New("hanab.live unreachable"),
	}}
	repo := seedAuditResults(t, "100", "200", "300")
	service := NewResultAuditService(repo, checker, nil, discardLogger())

	summary, err := service.ReauditResults(context.Background(), ReauditInput{EventID: memory.EventIDSpringArena, Concurrency: 2})
	if err != nil {
		t.Fatalf("reaudit: %v", err)
	}
	if summary.Total != 3 || summary.Passed != 1 || summary.Rejected != 1 || summary.Errored != 1 {
		t.Fatalf("summary: %+v", summary)
	}
	if len(summary.Findings) != 1 {
		t.Fatalf("findings: %+v", summary.Findings)
	}
	finding := summary.Findings[0]
	if finding.ResultID != "result-200" || finding.Code != replay.CodeSeedMismatch || finding.Detail != "seed drifted" {
		t.Fatalf("finding: %+v", finding)
	}
	if checker.calls != 3 {
		t.Fatalf("validator calls = %d, want 3", checker.calls)
	}
}

func TestReauditResults_EmptyEvent(t *testing.T) {
	t.Parallel()

	checker := &perMatchChecker{}
	repo := seedAuditResults(t)
	service := NewResultAuditService(repo, checker, nil, discardLogger())

	summary, err := service.ReauditResults(context.Background(), ReauditInput{EventID: memory.EventIDSpringArena})
	if err != nil {
		t.Fatalf("reaudit: %v", err)
	}
	if summary.Total != 0 || checker.calls != 0 {
		t.Fatalf("summary=%+v calls=%d", summary, checker.calls)
	}
}

func TestReauditResults_RequiresEventID(t *testing.T) {
	t.Parallel()

	service := NewResultAuditService(seedAuditResults(t), &perMatchChecker{}, nil, discardLogger())
	if _, err := service.ReauditResults(context.Background(), ReauditInput{EventID: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank event id: %v", err)
	}
}

func TestDispatchReaudit(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{}
	service := NewResultAuditService(seedAuditResults(t), &perMatchChecker{}, publisher, discardLogger())

	if err := service.DispatchReaudit(context.Background(), memory.EventIDSpringArena); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(publisher.eventIDs) != 1 || publisher.eventIDs[0] != memory.EventIDSpringArena {
		t.Fatalf("published: %v", publisher.eventIDs)
	}

	publisher.err = errors.New("queue down")
	if err := service.DispatchReaudit(context.Background(), memory.EventIDSpringArena); err == nil {
		t.Fatal("expected publish error to surface")
	}
}

func TestDispatchReaudit_NoPublisherConfigured(t *testing.T) {
	t.Parallel()

	service := NewResultAuditService(seedAuditResults(t), &perMatchChecker{}, nil, discardLogger())
	if err := service.DispatchReaudit(context.Background(), memory.EventIDSpringArena); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("nil publisher: %v", err)
	}
}
