package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ants "github.com/panjf2000/ants/v2"

	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	"github.com/hanabarena/hanab-arena/internal/domain/replay"
)

const defaultReauditConcurrency = 4

// ReauditJobPublisher defers a re-audit run to the job queue.
type ReauditJobPublisher interface {
	PublishReaudit(ctx context.Context, eventID string) error
}

type ReauditInput struct {
	EventID     string
	Concurrency int
}

// ReauditFinding is one recorded result that no longer validates.
type ReauditFinding struct {
	ResultID    string
	EventTeamID string
	TemplateID  string
	Code        replay.FailureCode
	Detail      string
}

type ReauditSummary struct {
	Total    int
	Passed   int
	Rejected int
	Errored  int
	Findings []ReauditFinding
}

// ResultAuditService re-runs the validation pipeline over already recorded
// results, catching results that slipped in before a rule tightened or that
// reference since-deleted games.
type ResultAuditService struct {
	resultRepo gameresult.Repository
	validator  ReplayChecker
	publisher  ReauditJobPublisher
	logger     *slog.Logger
}

func NewResultAuditService(
	resultRepo gameresult.Repository,
	validator ReplayChecker,
	publisher ReauditJobPublisher,
	logger *slog.Logger,
) *ResultAuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultAuditService{
		resultRepo: resultRepo,
		validator:  validator,
		publisher:  publisher,
		logger:     logger,
	}
}

// ReauditResults revalidates every recorded result of an event over a worker
// pool. The audit is read-only: findings are reported, never auto-deleted.
func (s *ResultAuditService) ReauditResults(ctx context.Context, input ReauditInput) (ReauditSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultAuditService.ReauditResults")
	defer span.End()

	eventID := strings.TrimSpace(input.EventID)
	if eventID == "" {
		return ReauditSummary{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	concurrency := input.Concurrency
	if concurrency <= 0 {
		concurrency = defaultReauditConcurrency
	}

	results, err := s.resultRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return ReauditSummary{}, fmt.Errorf("list event results: %w", err)
	}

	pool, err := ants.NewPool(concurrency)
	if err != nil {
		return ReauditSummary{}, fmt.Errorf("start audit worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		summary = ReauditSummary{Total: len(results)}
	)

	for _, result := range results {
		result := result
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			_, vErr := s.validator.ValidateReplay(ctx, result.EventTeamID, result.TemplateID, result.MatchID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case vErr == nil:
				summary.Passed++
			case isValidationFinding(vErr):
				var finding *replay.ValidationError
				_ = errors.As(vErr, &finding)
				summary.Rejected++
				summary.Findings = append(summary.Findings, ReauditFinding{
					ResultID:    result.ID,
					EventTeamID: result.EventTeamID,
					TemplateID:  result.TemplateID,
					Code:        finding.Code,
					Detail:      finding.Detail,
				})
				s.logger.WarnContext(ctx, "recorded result failed re-audit",
					"result_id", result.ID, "team_id", result.EventTeamID, "code", string(finding.Code))
			default:
				summary.Errored++
				s.logger.WarnContext(ctx, "re-audit could not validate result",
					"result_id", result.ID, "team_id", result.EventTeamID, "error", vErr)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			summary.Errored++
			mu.Unlock()
			s.logger.WarnContext(ctx, "audit pool rejected task", "result_id", result.ID, "error", submitErr)
		}
	}

	wg.Wait()
	return summary, nil
}

// DispatchReaudit queues a re-audit instead of running it inline.
func (s *ResultAuditService) DispatchReaudit(ctx context.Context, eventID string) error {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if s.publisher == nil {
		return fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
	}
	if err := s.publisher.PublishReaudit(ctx, eventID); err != nil {
		return fmt.Errorf("publish reaudit job: %w", err)
	}
	return nil
}

func isValidationFinding(err error) bool {
	var finding *replay.ValidationError
	return errors.As(err, &finding)
}
