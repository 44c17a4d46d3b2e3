package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/hanabarena/hanab-arena/internal/usecase"
)

type forfeitSpoilersRequest struct {
	TeamSize int `json:"team_size" validate:"required,min=2,max=6"`
}

func (h *Handler) ForfeitSpoilers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForfeitSpoilers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	eventID := pathValue(r, "eventID")

	var req forfeitSpoilersRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	record, err := h.eligibilityService.ForfeitSpoilers(ctx, eventID, req.TeamSize, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "forfeit spoilers failed", "event_id", eventID, "team_size", req.TeamSize, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eligibilityRecordToDTO(record))
}

func (h *Handler) ListMyEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEligibility")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	eventID := pathValue(r, "eventID")

	teamSize := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("team_size")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: team_size must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		teamSize = v
	}

	records, err := h.eligibilityService.ListForUser(ctx, eventID, principal.UserID, teamSize)
	if err != nil {
		h.logger.WarnContext(ctx, "list eligibility failed", "event_id", eventID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eligibilityRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, eligibilityRecordToDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
