package httpapi

import (
	"fmt"
	"net/http"

	"github.com/hanabarena/hanab-arena/internal/usecase"
)

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	eventID := pathValue(r, "eventID")
	teamID := pathValue(r, "teamID")

	item, ok := h.gateTeamRead(ctx, w, eventID, teamID)
	if !ok {
		return
	}

	details, err := h.teamService.GetTeamDetails(ctx, eventID, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team details failed", "event_id", eventID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailsToDTO(details))
}

func (h *Handler) ListTeamTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamTemplates")
	defer span.End()

	eventID := pathValue(r, "eventID")
	teamID := pathValue(r, "teamID")

	item, ok := h.gateTeamRead(ctx, w, eventID, teamID)
	if !ok {
		return
	}

	templates, err := h.teamService.ListTeamTemplates(ctx, eventID, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team templates failed", "event_id", eventID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]templateDTO, 0, len(templates))
	for _, t := range templates {
		items = append(items, templateToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	eventID := pathValue(r, "eventID")
	teamID := pathValue(r, "teamID")

	item, ok := h.gateTeamRead(ctx, w, eventID, teamID)
	if !ok {
		return
	}

	stats, err := h.teamService.GetTeamStats(ctx, eventID, item.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "event_id", eventID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(stats))
}

func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	eventID := pathValue(r, "eventID")
	teamID := pathValue(r, "teamID")

	member, err := h.teamService.JoinTeam(ctx, &principal, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "join team failed", "event_id", eventID, "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamMemberDTO{
		UserID:      member.UserID,
		DisplayName: member.DisplayName,
	})
}
