package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/hanabarena/hanab-arena/internal/usecase"
)

// DispatchReaudit lets an admin queue a re-audit of an event's recorded
// results. The actual run happens on the internal jobs route when the queue
// calls back.
func (h *Handler) DispatchReaudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DispatchReaudit")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	if !principal.IsAdmin() {
		writeError(ctx, w, fmt.Errorf("%w: re-audit dispatch requires an admin session", usecase.ErrForbidden))
		return
	}

	eventID := pathValue(r, "eventID")
	if err := h.auditService.DispatchReaudit(ctx, eventID); err != nil {
		h.logger.WarnContext(ctx, "dispatch reaudit failed", "event_id", eventID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{
		"event_id": eventID,
		"status":   "queued",
	})
}

type reauditJobRequest struct {
	EventID     string `json:"event_id" validate:"required"`
	Concurrency int    `json:"concurrency" validate:"omitempty,min=1,max=32"`
}

func (h *Handler) RunReauditJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReauditJob")
	defer span.End()

	var req reauditJobRequest
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

	summary, err := h.auditService.ReauditResults(ctx, usecase.ReauditInput{
		EventID:     req.EventID,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "reaudit job failed", "event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "reaudit job finished",
		"event_id", req.EventID,
		"total", summary.Total,
		"passed", summary.Passed,
		"rejected", summary.Rejected,
		"errored", summary.Errored,
	)
	writeSuccess(ctx, w, http.StatusOK, reauditSummaryToDTO(summary))
}
