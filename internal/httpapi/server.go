// Package httpapi serves read-only JSON views of rulesets and player stats.
//
// Routes:
//   - GET /health
//   - GET /api/rulesets
//   - GET /api/players
//   - GET /api/players/{name}
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/registry"
	"github.com/vovakirdan/swg/internal/stats"
	"github.com/vovakirdan/swg/internal/storage"
)

// historyLimit caps the sessions returned with a player.
const historyLimit = 20

// History is implemented by stores that keep per-session records.
type History interface {
	RecentSessions(ctx context.Context, player string, limit int) ([]storage.SessionEntry, error)
}

// Server bundles the router and the stats store.
type Server struct {
	r      *chi.Mux
	store  stats.Store
	logger *log.Logger
	http   *http.Server
}

// New constructs a Server, installs middleware and registers routes.
// A nil logger discards output.
func New(store stats.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/rulesets", s.handleRulesets)
		r.Get("/players", s.handlePlayers)
		r.Get("/players/{name}", s.handlePlayer)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

type rulesetRes struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Choices []string `json:"choices"`
}

func (s *Server) handleRulesets(w http.ResponseWriter, r *http.Request) {
	infos := registry.List()
	out := make([]rulesetRes, 0, len(infos))
	for _, info := range infos {
		choices := make([]string, len(info.Choices))
		for i, c := range info.Choices {
			choices[i] = c.String()
		}
		out = append(out, rulesetRes{ID: info.ID, Title: info.Title, Choices: choices})
	}
	writeJSON(w, http.StatusOK, out)
}

type playerRes struct {
	Player  string  `json:"player"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	Total   int     `json:"total"`
	WinRate float64 `json:"winRate"`
}

func newPlayerRes(name string, st stats.Stats) playerRes {
	return playerRes{
		Player:  name,
		Wins:    st.Wins,
		Losses:  st.Losses,
		Draws:   st.Draws,
		Total:   st.Total,
		WinRate: st.WinRate(),
	}
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.store.(stats.Lister)
	if !ok {
		writeError(w, http.StatusNotImplemented, "listing_unsupported")
		return
	}
	players, err := lister.Players(r.Context())
	if err != nil {
		s.logger.Error("list players", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	out := make([]playerRes, 0, len(players))
	for _, p := range players {
		out = append(out, newPlayerRes(p.Player, p.Stats))
	}
	writeJSON(w, http.StatusOK, out)
}

type sessionRes struct {
	SessionID    string    `json:"sessionId"`
	Ruleset      string    `json:"ruleset"`
	Mode         string    `json:"mode"`
	RoundsPlayed int       `json:"roundsPlayed"`
	RoundsPlan   int       `json:"roundsPlan"`
	HumanWins    int       `json:"humanWins"`
	EngineWins   int       `json:"engineWins"`
	Draws        int       `json:"draws"`
	Outcome      string    `json:"outcome"`
	DurationSecs int       `json:"durationSecs"`
	CreatedAt    time.Time `json:"createdAt"`
}

type playerDetailRes struct {
	playerRes
	Summary  string       `json:"summary"`
	Sessions []sessionRes `json:"sessions,omitempty"`
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	name := match.NormalizeName(chi.URLParam(r, "name"))

	st, found, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.logger.Error("load player", "player", name, "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "player_not_found")
		return
	}

	out := playerDetailRes{
		playerRes: newPlayerRes(name, st),
		Summary:   st.Summary(),
	}

	if h, ok := s.store.(History); ok {
		entries, err := h.RecentSessions(r.Context(), name, historyLimit)
		if err != nil {
			s.logger.Warn("load sessions", "player", name, "err", err)
		}
		for _, e := range entries {
			out.Sessions = append(out.Sessions, sessionRes{
				SessionID:    e.SessionID,
				Ruleset:      e.Ruleset,
				Mode:         e.Mode,
				RoundsPlayed: e.RoundsPlayed,
				RoundsPlan:   e.RoundsPlan,
				HumanWins:    e.HumanWins,
				EngineWins:   e.EngineWins,
				Draws:        e.Draws,
				Outcome:      e.Outcome,
				DurationSecs: e.Duration,
				CreatedAt:    e.CreatedAt,
			})
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
