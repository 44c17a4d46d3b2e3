package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	"github.com/hanabarena/hanab-arena/internal/domain/replay"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
	"github.com/hanabarena/hanab-arena/internal/domain/user"
	"github.com/hanabarena/hanab-arena/internal/platform/id"
)

// ReplayChecker is the validation half SubmitResult depends on.
type ReplayChecker interface {
	ValidateReplay(ctx context.Context, teamID, templateID, rawRef string) (replay.ValidationResult, error)
}

// ResultService records validated game results and promotes player
// eligibility when a team finishes its stage.
type ResultService struct {
	teamRepo        team.Repository
	templateRepo    template.Repository
	resultRepo      gameresult.Repository
	eligibilityRepo eligibility.Repository
	validator       ReplayChecker
	idGen           id.Generator
	logger          *slog.Logger
	now             func() time.Time
}

func NewResultService(
	teamRepo team.Repository,
	templateRepo template.Repository,
	resultRepo gameresult.Repository,
	eligibilityRepo eligibility.Repository,
	validator ReplayChecker,
	idGen id.Generator,
	logger *slog.Logger,
) *ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{
		teamRepo:        teamRepo,
		templateRepo:    templateRepo,
		resultRepo:      resultRepo,
		eligibilityRepo: eligibilityRepo,
		validator:       validator,
		idGen:           idGen,
		logger:          logger,
		now:             time.Now,
	}
}

// SubmitResult validates a replay reference and records the game for
// (team, template). The submitter must be on the roster. Once the team has a
// result for every template of its stage, each member is marked COMPLETED
// for the bracket; those eligibility writes are best-effort and never undo
// the recorded result.
func (s *ResultService) SubmitResult(ctx context.Context, principal *user.Principal, teamID, templateID, rawRef string) (gameresult.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "ResultService.SubmitResult")
	defer span.End()

	if principal == nil {
		return gameresult.Result{}, fmt.Errorf("%w: login required", ErrUnauthorized)
	}
	teamID = strings.TrimSpace(teamID)
	templateID = strings.TrimSpace(templateID)
	if teamID == "" {
		return gameresult.Result{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if templateID == "" {
		return gameresult.Result{}, fmt.Errorf("%w: template id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(rawRef) == "" {
		return gameresult.Result{}, fmt.Errorf("%w: replay reference is required", ErrInvalidInput)
	}

	teamItem, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return gameresult.Result{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return gameresult.Result{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	isMember, err := s.teamRepo.IsMember(ctx, teamID, principal.UserID)
	if err != nil {
		return gameresult.Result{}, fmt.Errorf("check team membership: %w", err)
	}
	if !isMember {
		return gameresult.Result{}, fmt.Errorf("%w: only roster members may submit results", ErrForbidden)
	}

	validation, err := s.validator.ValidateReplay(ctx, teamID, templateID, rawRef)
	if err != nil {
		return gameresult.Result{}, err
	}

	resultID, err := s.idGen.NewID()
	if err != nil {
		return gameresult.Result{}, fmt.Errorf("generate result id: %w", err)
	}

	result := gameresult.Result{
		ID:           resultID,
		EventTeamID:  teamID,
		TemplateID:   templateID,
		MatchID:      validation.MatchID,
		Score:        validation.Score,
		EndCondition: validation.EndCondition,
		PlayedAt:     validation.PlayedAt,
		Players:      validation.Players,
		SubmittedBy:  principal.UserID,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.resultRepo.Insert(ctx, result); err != nil {
		if errors.Is(err, gameresult.ErrDuplicate) {
			return gameresult.Result{}, fmt.Errorf("%w: team=%s template=%s", ErrDuplicateResult, teamID, templateID)
		}
		return gameresult.Result{}, fmt.Errorf("insert game result: %w", err)
	}

	s.promoteCompletedMembers(ctx, teamItem)
	return result, nil
}

// promoteCompletedMembers marks every roster member COMPLETED once the team
// holds a result for each template of its stage. Failures here are logged
// and swallowed: the result is already recorded and must stand.
func (s *ResultService) promoteCompletedMembers(ctx context.Context, teamItem team.Team) {
	templates, err := s.templateRepo.ListByStage(ctx, teamItem.StageID)
	if err != nil {
		s.logger.WarnContext(ctx, "skip completion check: list stage templates failed",
			"team_id", teamItem.ID, "stage_id", teamItem.StageID, "error", err)
		return
	}
	if len(templates) == 0 {
		return
	}

	results, err := s.resultRepo.ListByTeam(ctx, teamItem.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "skip completion check: list team results failed",
			"team_id", teamItem.ID, "error", err)
		return
	}

	recorded := make(map[string]struct{}, len(results))
	for _, r := range results {
		recorded[r.TemplateID] = struct{}{}
	}
	for _, t := range templates {
		if _, ok := recorded[t.ID]; !ok {
			return
		}
	}

	members, err := s.teamRepo.ListMembers(ctx, teamItem.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "skip completion promotion: list team members failed",
			"team_id", teamItem.ID, "error", err)
		return
	}
	for _, m := range members {
		if _, err := s.eligibilityRepo.MarkCompleted(ctx, teamItem.EventID, teamItem.TeamSize, m.UserID, ""); err != nil {
			s.logger.WarnContext(ctx, "mark completed failed after recorded result",
				"team_id", teamItem.ID, "user_id", m.UserID, "error", err)
		}
	}
}
