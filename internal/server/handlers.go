package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/packsmith/internal/reconcile"
	"github.com/desertthunder/packsmith/internal/repositories"
	"github.com/desertthunder/packsmith/internal/services"
	"github.com/desertthunder/packsmith/internal/shared"
)

// API serves read-only pack and series data over JSON.
type API struct {
	packs    *repositories.PackRepository
	songs    *repositories.SongRepository
	seriesDB *repositories.SeriesRepository
	catalog  services.Catalog
	logger   *log.Logger
}

// NewAPI creates the JSON API handler. The catalog may be nil, which disables
// the coverage endpoint.
func NewAPI(packs *repositories.PackRepository, songs *repositories.SongRepository, seriesDB *repositories.SeriesRepository, catalog services.Catalog, logger *log.Logger) *API {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &API{
		packs:    packs,
		songs:    songs,
		seriesDB: seriesDB,
		catalog:  catalog,
		logger:   logger,
	}
}

// Routes returns the path patterns this handler serves.
func (a *API) Routes() []string {
	return []string{"/health", "/packs", "/packs/songs", "/series", "/series/coverage"}
}

// ServeHTTP dispatches to the endpoint handlers. Only GET is served.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/health":
		a.health(w, r)
	case "/packs":
		a.listPacks(w, r)
	case "/packs/songs":
		a.listPackSongs(w, r)
	case "/series":
		a.listSeries(w, r)
	case "/series/coverage":
		a.seriesCoverage(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) listPacks(w http.ResponseWriter, _ *http.Request) {
	packs, err := a.packs.List(nil)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"packs": packs})
}

func (a *API) listPackSongs(w http.ResponseWriter, r *http.Request) {
	packID := r.URL.Query().Get("pack_id")
	if packID == "" {
		http.Error(w, "pack_id is required", http.StatusBadRequest)
		return
	}

	songs, err := a.songs.ListPackSongs(packID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"songs": songs})
}

func (a *API) listSeries(w http.ResponseWriter, _ *http.Request) {
	series, err := a.seriesDB.List(nil)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"series": series})
}

// seriesCoverage rebuilds the entry projection for a series and reports each
// entry's derived status plus the coverage percentage.
func (a *API) seriesCoverage(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		http.Error(w, "catalog not configured", http.StatusServiceUnavailable)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	series, err := a.seriesDB.Get(id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	port := reconcile.NewEditPort(series, a.songs, a.seriesDB, a.catalog)
	entries, err := port.LoadTracklist(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	type entryView struct {
		Disc        int    `json:"disc"`
		Track       int    `json:"track"`
		Title       string `json:"title"`
		Status      string `json:"status"`
		PreExisting bool   `json:"pre_existing"`
		Irrelevant  bool   `json:"irrelevant"`
		SongID      string `json:"song_id,omitempty"`
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{
			Disc:        e.Disc(),
			Track:       e.TrackNumber,
			Title:       e.TitleClean,
			Status:      reconcile.Classify(e),
			PreExisting: e.PreExisting,
			Irrelevant:  e.Irrelevant,
			SongID:      e.SongID,
		})
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"series":   series,
		"coverage": reconcile.Coverage(entries),
		"entries":  views,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := shared.MarshalJSON(data, false)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	a.logger.Error("request failed", "error", err)

	status := http.StatusInternalServerError
	if errors.Is(err, shared.ErrNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

// Logging returns middleware that logs method, path, and duration.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

// New assembles an http.Server around the API with logging middleware.
func New(cfg shared.ServerConfig, api *API, logger *log.Logger) *http.Server {
	router := NewBasicRouter()
	router.Use(Logging(logger))
	router.Handler(api)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
