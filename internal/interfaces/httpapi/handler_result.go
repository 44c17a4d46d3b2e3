package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/hanabarena/hanab-arena/internal/usecase"
)

type submitResultRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
	ReplayRef  string `json:"replay_ref" validate:"required,max=512"`
}

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	teamID := pathValue(r, "teamID")

	var req submitResultRequest
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

	result, err := h.resultService.SubmitResult(ctx, &principal, teamID, req.TemplateID, req.ReplayRef)
	if err != nil {
		h.logger.WarnContext(ctx, "submit result failed",
			"team_id", teamID, "template_id", req.TemplateID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(result))
}
