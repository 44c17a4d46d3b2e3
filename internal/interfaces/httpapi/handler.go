package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hanabarena/hanab-arena/internal/domain/team"
	"github.com/hanabarena/hanab-arena/internal/usecase"
)

type Handler struct {
	teamService        *usecase.TeamService
	eligibilityService *usecase.EligibilityService
	resultService      *usecase.ResultService
	auditService       *usecase.ResultAuditService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	eligibilityService *usecase.EligibilityService,
	resultService *usecase.ResultService,
	auditService *usecase.ResultAuditService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		teamService:        teamService,
		eligibilityService: eligibilityService,
		resultService:      resultService,
		auditService:       auditService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// gateTeamRead loads the team and runs the spoiler gate for the current
// viewer. It returns ok=false after writing the denial response itself, so
// handlers only proceed on allowed reads.
func (h *Handler) gateTeamRead(ctx context.Context, w http.ResponseWriter, eventID, teamID string) (team.Team, bool) {
	item, err := h.teamService.GetTeam(ctx, eventID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "event_id", eventID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return team.Team{}, false
	}

	viewer := viewerFromContext(ctx)
	isMember, err := h.teamService.IsMember(ctx, item.ID, viewer)
	if err != nil {
		h.logger.WarnContext(ctx, "membership check failed", "team_id", item.ID, "error", err)
		writeError(ctx, w, err)
		return team.Team{}, false
	}

	verdict, err := h.eligibilityService.CheckSpoilerGate(ctx, eventID, item.TeamSize, viewer, isMember)
	if err != nil {
		h.logger.WarnContext(ctx, "spoiler gate check failed", "event_id", eventID, "team_id", item.ID, "error", err)
		writeError(ctx, w, err)
		return team.Team{}, false
	}
	if !verdict.Allowed {
		writeGateDenial(ctx, w, verdict)
		return team.Team{}, false
	}

	return item, true
}

func writeGateDenial(ctx context.Context, w http.ResponseWriter, verdict usecase.GateVerdict) {
	status := "PERMISSION_DENIED"
	if verdict.HTTPStatus == http.StatusUnauthorized {
		status = "UNAUTHENTICATED"
	}

	writeJSON(ctx, w, verdict.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    verdict.HTTPStatus,
			Message: gateDenialMessage(verdict.Reason),
			Status:  status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  string(verdict.Reason),
					Message: gateDenialMessage(verdict.Reason),
				},
			},
		},
	})
}

func gateDenialMessage(reason usecase.GateReason) string {
	switch reason {
	case usecase.GateReasonLoginRequired:
		return "log in to view this team"
	case usecase.GateReasonEnrolled:
		return "you are enrolled in this bracket; viewing another team would spoil your own games"
	case usecase.GateReasonRequiresForfeit:
		return "forfeit your eligibility for this bracket to view other teams"
	default:
		return "spoiler gate denied the request"
	}
}

func pathValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PathValue(key))
}
