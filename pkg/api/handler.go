package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hazyhaar/americana/pkg/demo"
	"github.com/hazyhaar/americana/pkg/kit"
	"github.com/hazyhaar/americana/pkg/store"
)

// NewRouter returns an http.Handler with all API routes. A nil logger
// falls back to slog.Default().
func NewRouter(s *store.Store, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mw := kit.Chain(loggingMiddleware(logger))

	mux := http.NewServeMux()
	h := &handler{
		profile:  mw(profileEndpoint(s)),
		table:    mw(tableEndpoint(s)),
		years:    mw(yearsEndpoint(s)),
		datasets: mw(datasetsEndpoint(s)),
		store:    s,
	}

	mux.HandleFunc("GET /v1/profile", h.handleProfile)
	mux.HandleFunc("GET /v1/profile/{year}", h.handleProfile)
	mux.HandleFunc("GET /v1/table", h.handleTable)
	mux.HandleFunc("GET /v1/years", h.handleYears)
	mux.HandleFunc("GET /v1/datasets", h.handleDatasets)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(withRequestContext(mux))
}

// loggingMiddleware records every endpoint invocation with its transport
// and request id.
func loggingMiddleware(logger *slog.Logger) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			logger.Debug("endpoint served",
				"transport", kit.GetTransport(ctx),
				"request_id", kit.GetRequestID(ctx),
				"duration", time.Since(start),
				"error", err,
			)
			return resp, err
		}
	}
}

// withRequestContext tags each HTTP request with a transport label and a
// short random request id.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRequestID(ctx, "http_"+randomHex(4))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// randomHex returns n random bytes encoded as hex.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

type handler struct {
	profile  kit.Endpoint
	table    kit.Endpoint
	years    kit.Endpoint
	datasets kit.Endpoint
	store    *store.Store
}

// --- profile ---

func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	req := &profileReq{}

	if v := r.PathValue("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year "+v)
			return
		}
		req.Year = year
	}
	if v := r.URL.Query().Get("gender"); v != "" {
		g, err := demo.ParseGender(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Gender = &g
	}

	resp, err := h.profile(r.Context(), req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- table ---

func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	req := &tableReq{}
	for _, bound := range []struct {
		name string
		dst  *int
	}{{"from", &req.From}, {"to", &req.To}} {
		if v := r.URL.Query().Get(bound.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid "+bound.name+" "+v)
				return
			}
			*bound.dst = n
		}
	}

	resp, err := h.table(r.Context(), req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- years / datasets / health ---

func (h *handler) handleYears(w http.ResponseWriter, r *http.Request) {
	resp, err := h.years(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleDatasets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.datasets(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status string `json:"status"`
	Years  int    `json:"years"`
	Names  int    `json:"name_years"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Years:  len(h.store.Years()),
		Names:  len(h.store.Names()),
	})
}

// --- helpers ---

func writeEndpointError(w http.ResponseWriter, err error) {
	var ynf *demo.YearNotFoundError
	switch {
	case errors.As(err, &ynf):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNoStore):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
