// Package httpapi is the RPC facade: one handler per catalog operation,
// JSON over HTTP, with bearer-token authentication for the mutating and
// identity-bound endpoints.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"anidex.org/internal/apperrors"
	"anidex.org/internal/audit"
	"anidex.org/internal/auth"
	"anidex.org/internal/catalog"
	"anidex.org/internal/obs"
)

// ReadyProbe reports whether the service can reach its dependencies.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	router     chi.Router
	auth       *auth.Service
	series     *catalog.SeriesService
	seasons    *catalog.SeasonService
	sources    *catalog.SourceService
	episodes   *catalog.EpisodeService
	readyProbe ReadyProbe
	version    string
}

// New wires the routes. Authorization decisions stay in the service layer;
// the router only separates anonymous endpoints from token-bearing ones.
func New(
	authSvc *auth.Service,
	series *catalog.SeriesService,
	seasons *catalog.SeasonService,
	sources *catalog.SourceService,
	episodes *catalog.EpisodeService,
	rp ReadyProbe,
	version string,
) *API {
	a := &API{
		auth:       authSvc,
		series:     series,
		seasons:    seasons,
		sources:    sources,
		episodes:   episodes,
		readyProbe: rp,
		version:    version,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)

	r.Get("/healthz", a.Healthz)
	r.Get("/readyz", a.Ready)
	r.Handle("/metrics", obs.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/token", a.handleCreateToken)
		r.Post("/auth/admin-token", a.handleCreateAdminToken)
		r.Post("/auth/recover", a.handleRecoverUser)

		r.Get("/series/{id}", a.handleGetSeries)
		r.Get("/series", a.handleSearchSeries)
		r.Get("/series/{id}/seasons", a.handleListSeasons)
		r.Get("/series/{id}/seasons/last-sequence", a.handleLastSeasonSequence)
		r.Get("/sources", a.handleSearchSources)
		r.Get("/sources/{id}", a.handleGetSource)
		r.Get("/seasons/{id}/sources", a.handleListSourcesBySeason)
		r.Get("/episodes", a.handleListEpisodes)

		r.Group(func(r chi.Router) {
			r.Use(a.withIdentity)

			r.Get("/auth/me", a.handleUserInfo)
			r.Post("/auth/recovery-key", a.handleRecoveryKey)

			r.Post("/series", a.handleCreateSeries)
			r.Put("/series/{id}", a.handleEditSeries)
			r.Post("/seasons", a.handleCreateSeason)
			r.Put("/seasons/{id}", a.handleEditSeason)
			r.Post("/sources", a.handleCreateSource)
			r.Put("/sources/{id}", a.handleEditSource)
			r.Post("/episodes", a.handleCreateEpisode)
			r.Put("/episodes/{id}", a.handleUpdateEpisode)
		})
	})

	a.router = r
	return a
}

// Handler returns the instrumented root handler.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "anidex-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

// handleAppError maps the error taxonomy onto status codes. Unknown
// failures stay opaque to the caller.
func handleAppError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindInvalidData:
		writeError(w, r, http.StatusBadRequest, err.Error())
	case apperrors.KindUnauthorized:
		writeError(w, r, http.StatusUnauthorized, err.Error())
	case apperrors.KindNotFound:
		writeError(w, r, http.StatusNotFound, err.Error())
	case apperrors.KindConflict:
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
