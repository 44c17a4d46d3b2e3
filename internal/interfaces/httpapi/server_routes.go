package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Gated event routes sit behind OptionalAuth: the spoiler gate inside the
// handlers treats anonymous and authenticated viewers differently, so the
// middleware must not reject anonymous requests outright.
func registerGatedEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/events/{eventID}/teams/{teamID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("GET /v1/events/{eventID}/teams/{teamID}/templates", OptionalAuth(verifier, http.HandlerFunc(handler.ListTeamTemplates)))
	mux.Handle("GET /v1/events/{eventID}/teams/{teamID}/stats", OptionalAuth(verifier, http.HandlerFunc(handler.GetTeamStats)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/events/{eventID}/eligibility/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEligibility)))
	mux.Handle("POST /v1/events/{eventID}/spoilers/forfeit", RequireAuth(verifier, http.HandlerFunc(handler.ForfeitSpoilers)))
	mux.Handle("POST /v1/events/{eventID}/teams/{teamID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTeam)))
	mux.Handle("POST /v1/events/{eventID}/teams/{teamID}/results", RequireAuth(verifier, http.HandlerFunc(handler.SubmitResult)))
	mux.Handle("POST /v1/admin/events/{eventID}/reaudit-results", RequireAuth(verifier, http.HandlerFunc(handler.DispatchReaudit)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reaudit-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReauditJob)))
}
