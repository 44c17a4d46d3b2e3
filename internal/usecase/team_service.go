package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
	"github.com/hanabarena/hanab-arena/internal/domain/user"
)

// TeamDetails is a team with its roster, for the gated team page.
type TeamDetails struct {
	Team    team.Team
	Members []team.Member
}

// TeamStats summarizes a team's recorded results for the gated stats page.
type TeamStats struct {
	Team            team.Team
	Results         []gameresult.Result
	TemplatesTotal  int
	TemplatesPlayed int
}

// TeamService serves the team reads behind the spoiler gate and the one
// write this subsystem owns: joining a team, which enrolls the player in the
// bracket as a side effect.
type TeamService struct {
	teamRepo        team.Repository
	templateRepo    template.Repository
	resultRepo      gameresult.Repository
	eligibilityRepo eligibility.Repository
	logger          *slog.Logger
}

func NewTeamService(
	teamRepo team.Repository,
	templateRepo template.Repository,
	resultRepo gameresult.Repository,
	eligibilityRepo eligibility.Repository,
	logger *slog.Logger,
) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeamService{
		teamRepo:        teamRepo,
		templateRepo:    templateRepo,
		resultRepo:      resultRepo,
		eligibilityRepo: eligibilityRepo,
		logger:          logger,
	}
}

// GetTeam loads a team and checks it belongs to the claimed event.
func (s *TeamService) GetTeam(ctx context.Context, eventID, teamID string) (team.Team, error) {
	eventID = strings.TrimSpace(eventID)
	teamID = strings.TrimSpace(teamID)
	if eventID == "" {
		return team.Team{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || item.EventID != eventID {
		return team.Team{}, fmt.Errorf("%w: team=%s event=%s", ErrNotFound, teamID, eventID)
	}
	return item, nil
}

func (s *TeamService) GetTeamDetails(ctx context.Context, eventID, teamID string) (TeamDetails, error) {
	item, err := s.GetTeam(ctx, eventID, teamID)
	if err != nil {
		return TeamDetails{}, err
	}

	members, err := s.teamRepo.ListMembers(ctx, item.ID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list team members: %w", err)
	}
	return TeamDetails{Team: item, Members: members}, nil
}

// ListTeamTemplates returns the seed templates of the team's stage. This is
// the most spoiler-sensitive read the gate protects.
func (s *TeamService) ListTeamTemplates(ctx context.Context, eventID, teamID string) ([]template.Template, error) {
	item, err := s.GetTeam(ctx, eventID, teamID)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.ListByStage(ctx, item.StageID)
	if err != nil {
		return nil, fmt.Errorf("list stage templates: %w", err)
	}
	return templates, nil
}

func (s *TeamService) GetTeamStats(ctx context.Context, eventID, teamID string) (TeamStats, error) {
	item, err := s.GetTeam(ctx, eventID, teamID)
	if err != nil {
		return TeamStats{}, err
	}

	templates, err := s.templateRepo.ListByStage(ctx, item.StageID)
	if err != nil {
		return TeamStats{}, fmt.Errorf("list stage templates: %w", err)
	}
	results, err := s.resultRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return TeamStats{}, fmt.Errorf("list team results: %w", err)
	}

	return TeamStats{
		Team:            item,
		Results:         results,
		TemplatesTotal:  len(templates),
		TemplatesPlayed: len(results),
	}, nil
}

// IsMember reports whether the viewer is on the team's roster. A nil viewer
// is never a member.
func (s *TeamService) IsMember(ctx context.Context, teamID string, viewer *user.Principal) (bool, error) {
	if viewer == nil || strings.TrimSpace(teamID) == "" {
		return false, nil
	}
	ok, err := s.teamRepo.IsMember(ctx, teamID, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("check team membership: %w", err)
	}
	return ok, nil
}

// JoinTeam adds the principal to the roster and enrolls them in the
// bracket. Enrollment is bookkeeping: if the eligibility write fails the
// membership still stands and the failure is only logged.
func (s *TeamService) JoinTeam(ctx context.Context, principal *user.Principal, teamID string) (team.Member, error) {
	if principal == nil {
		return team.Member{}, fmt.Errorf("%w: login required", ErrUnauthorized)
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Member{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Member{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Member{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	member := team.Member{
		TeamID:      item.ID,
		UserID:      principal.UserID,
		DisplayName: principal.DisplayName,
	}
	if err := member.Validate(); err != nil {
		return team.Member{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return team.Member{}, fmt.Errorf("add team member: %w", err)
	}

	sourceTeamID := item.ID
	if _, err := s.eligibilityRepo.UpsertEnrolledIfMissing(ctx, item.EventID, item.TeamSize, principal.UserID, &sourceTeamID); err != nil {
		s.logger.WarnContext(ctx, "enrollment bookkeeping failed after team join",
			"team_id", item.ID, "event_id", item.EventID, "user_id", principal.UserID, "error", err)
	}
	return member, nil
}
