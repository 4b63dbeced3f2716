package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/home", handler.GetHome)
	mux.HandleFunc("GET /v1/reference", handler.GetReference)
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/featured", handler.ListFeaturedTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/live", handler.StreamTournamentStatus)
	mux.HandleFunc("GET /v1/organizers", handler.ListOrganizers)
	mux.HandleFunc("GET /v1/organizers/{organizerID}", handler.GetOrganizer)
	mux.HandleFunc("GET /v1/thank-you/{kind}", handler.GetThankYou)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
}

func registerSubmissionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/submissions/tournaments", handler.SubmitTournament)
	mux.HandleFunc("POST /v1/submissions/verification", handler.SubmitVerification)
	mux.HandleFunc("POST /v1/submissions/contact", handler.SubmitContact)
	mux.HandleFunc("POST /v1/submissions/newsletter", handler.SubscribeNewsletter)
	mux.HandleFunc("POST /v1/uploads", handler.UploadImage)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/auth/session", RequireAuth(verifier, http.HandlerFunc(handler.GetSession)))
	mux.Handle("GET /v1/admin/snapshot", RequireAuth(verifier, http.HandlerFunc(handler.GetAdminSnapshot)))

	mux.Handle("POST /v1/admin/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.CreateTournament)))
	mux.Handle("PUT /v1/admin/tournaments/{tournamentID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTournament)))
	mux.Handle("DELETE /v1/admin/tournaments/{tournamentID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTournament)))

	mux.Handle("POST /v1/admin/organizers", RequireAuth(verifier, http.HandlerFunc(handler.CreateOrganizer)))
	mux.Handle("PUT /v1/admin/organizers/{organizerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateOrganizer)))
	mux.Handle("DELETE /v1/admin/organizers/{organizerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteOrganizer)))

	// Unsaved admin form state, keyed like adminTournamentForm_edit_12.
	mux.Handle("GET /v1/admin/drafts/{draftKey}", RequireAuth(verifier, http.HandlerFunc(handler.GetDraft)))
	mux.Handle("PUT /v1/admin/drafts/{draftKey}", RequireAuth(verifier, http.HandlerFunc(handler.SaveDraft)))
	mux.Handle("DELETE /v1/admin/drafts/{draftKey}", RequireAuth(verifier, http.HandlerFunc(handler.DiscardDraft)))
}
