package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"domaininfo/internal/domain"
	"domaininfo/internal/ports"
)

const serviceName = "domain-info"

// Server exposes the lookup pipeline over HTTP. Client errors are reported
// in the body with status 200, which the browser extension relies on.
type Server struct {
	resolver ports.Resolver
	recorder ports.LookupRecorder
	clock    clockwork.Clock
	log      zerolog.Logger
}

func New(resolver ports.Resolver, recorder ports.LookupRecorder, clock clockwork.Clock, log zerolog.Logger) *Server {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Server{resolver: resolver, recorder: recorder, clock: clock, log: log}
}

// Routes returns the router with CORS, recovery and access logging applied
// to every path, including unknown ones.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Get("/api/domain-info", s.getDomainInfo)
	r.Get("/api/health", s.getHealth)
	return r
}

func (s *Server) getDomainInfo(w http.ResponseWriter, r *http.Request) {
	// Repeated parameters: the first wins.
	raw := r.URL.Query().Get("domain")
	if raw == "" {
		writeJSON(w, http.StatusOK, errorResponse{Error: "No domain provided"})
		return
	}

	name := domain.Normalize(raw)
	rec := s.resolver.Resolve(r.Context(), name)

	s.recorder.Record(ports.LookupEntry{
		ID:         uuid.NewString(),
		Query:      raw,
		Record:     rec,
		ResolvedAt: s.clock.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: serviceName})
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, errorResponse{Error: "Endpoint not found"})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// cors allows any origin and answers preflight requests on every path.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
