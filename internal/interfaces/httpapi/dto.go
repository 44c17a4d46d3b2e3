package httpapi

import (
	"time"

	"github.com/hanabarena/hanab-arena/internal/domain/eligibility"
	"github.com/hanabarena/hanab-arena/internal/domain/gameresult"
	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/domain/template"
	"github.com/hanabarena/hanab-arena/internal/usecase"
)

type eligibilityRecordDTO struct {
	EventID      string    `json:"event_id"`
	TeamSize     int       `json:"team_size"`
	Status       string    `json:"status"`
	StatusReason string    `json:"status_reason"`
	SourceTeamID *string   `json:"source_team_id,omitempty"`
	ChangedAt    time.Time `json:"changed_at"`
}

func eligibilityRecordToDTO(record eligibility.Record) eligibilityRecordDTO {
	return eligibilityRecordDTO{
		EventID:      record.EventID,
		TeamSize:     record.TeamSize,
		Status:       string(record.Status),
		StatusReason: record.StatusReason,
		SourceTeamID: record.SourceEventTeamID,
		ChangedAt:    record.ChangedAt,
	}
}

type teamDTO struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	StageID  string `json:"stage_id"`
	Name     string `json:"name"`
	TeamSize int    `json:"team_size"`
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:       item.ID,
		EventID:  item.EventID,
		StageID:  item.StageID,
		Name:     item.Name,
		TeamSize: item.TeamSize,
	}
}

type teamMemberDTO struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type teamDetailsDTO struct {
	teamDTO
	Members []teamMemberDTO `json:"members"`
}

func teamDetailsToDTO(details usecase.TeamDetails) teamDetailsDTO {
	members := make([]teamMemberDTO, 0, len(details.Members))
	for _, m := range details.Members {
		members = append(members, teamMemberDTO{UserID: m.UserID, DisplayName: m.DisplayName})
	}
	return teamDetailsDTO{
		teamDTO: teamToDTO(details.Team),
		Members: members,
	}
}

type templateDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	SeedSuffix string `json:"seed_suffix"`
	Ordering   int    `json:"ordering"`
}

func templateToDTO(item template.Template) templateDTO {
	return templateDTO{
		ID:         item.ID,
		Name:       item.Name,
		Variant:    item.Variant,
		SeedSuffix: item.SeedSuffix,
		Ordering:   item.Ordering,
	}
}

type resultDTO struct {
	ID           string     `json:"id"`
	TemplateID   string     `json:"template_id"`
	MatchID      string     `json:"match_id"`
	Score        *int       `json:"score,omitempty"`
	EndCondition *int       `json:"end_condition,omitempty"`
	PlayedAt     *time.Time `json:"played_at,omitempty"`
	Players      []string   `json:"players"`
	SubmittedBy  string     `json:"submitted_by"`
}

func resultToDTO(item gameresult.Result) resultDTO {
	return resultDTO{
		ID:           item.ID,
		TemplateID:   item.TemplateID,
		MatchID:      item.MatchID,
		Score:        item.Score,
		EndCondition: item.EndCondition,
		PlayedAt:     item.PlayedAt,
		Players:      item.Players,
		SubmittedBy:  item.SubmittedBy,
	}
}

type teamStatsDTO struct {
	Team            teamDTO     `json:"team"`
	Results         []resultDTO `json:"results"`
	TemplatesTotal  int         `json:"templates_total"`
	TemplatesPlayed int         `json:"templates_played"`
}

func teamStatsToDTO(stats usecase.TeamStats) teamStatsDTO {
	results := make([]resultDTO, 0, len(stats.Results))
	for _, item := range stats.Results {
		results = append(results, resultToDTO(item))
	}
	return teamStatsDTO{
		Team:            teamToDTO(stats.Team),
		Results:         results,
		TemplatesTotal:  stats.TemplatesTotal,
		TemplatesPlayed: stats.TemplatesPlayed,
	}
}

type reauditFindingDTO struct {
	ResultID string `json:"result_id"`
	TeamID   string `json:"team_id"`
	Template string `json:"template_id"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

type reauditSummaryDTO struct {
	Total    int                 `json:"total"`
	Passed   int                 `json:"passed"`
	Rejected int                 `json:"rejected"`
	Errored  int                 `json:"errored"`
	Findings []reauditFindingDTO `json:"findings"`
}

func reauditSummaryToDTO(summary usecase.ReauditSummary) reauditSummaryDTO {
	findings := make([]reauditFindingDTO, 0, len(summary.Findings))
	for _, f := range summary.Findings {
		findings = append(findings, reauditFindingDTO{
			ResultID: f.ResultID,
			TeamID:   f.EventTeamID,
			Template: f.TemplateID,
			Code:     string(f.Code),
			Detail:   f.Detail,
		})
	}
	return reauditSummaryDTO{
		Total:    summary.Total,
		Passed:   summary.Passed,
		Rejected: summary.Rejected,
		Errored:  summary.Errored,
		Findings: findings,
	}
}
