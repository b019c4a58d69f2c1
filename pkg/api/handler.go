package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/opencoc/pitpipe/pkg/kit"
	"github.com/opencoc/pitpipe/pkg/region"
	"github.com/opencoc/pitpipe/pkg/runstore"
)

// NewRouter returns an http.Handler with all API routes.
func NewRouter(reg *region.Registry, store *runstore.Store) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		detect:      detectEndpoint(reg),
		listRegions: listRegionsEndpoint(reg),
		listRuns:    listRunsEndpoint(store),
		getRun:      getRunEndpoint(store),
		reg:         reg,
	}

	mux.HandleFunc("GET /v1/detect", methodNotAllowed) // detection needs a body
	mux.HandleFunc("POST /v1/detect", h.handleDetect)
	mux.HandleFunc("GET /v1/regions", h.handleListRegions)
	mux.HandleFunc("GET /v1/runs", h.handleListRuns)
	mux.HandleFunc("GET /v1/runs/{id}", h.handleGetRun)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	detect      kit.Endpoint
	listRegions kit.Endpoint
	listRuns    kit.Endpoint
	getRun      kit.Endpoint
	reg         *region.Registry
}

// reqCtx tags the request context with transport and request id so the
// endpoints see the same metadata regardless of transport.
func reqCtx(r *http.Request) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	return kit.WithRequestID(ctx, uuid.NewString())
}

// --- detect ---

type httpDetectRequest struct {
	Header []string `json:"header"`
}

func (h *handler) handleDetect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.detect(reqCtx(r), &detectReq{Header: req.Header})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- regions ---

func (h *handler) handleListRegions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listRegions(reqCtx(r), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- runs ---

func (h *handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	resp, err := h.listRuns(reqCtx(r), &runsReq{Limit: limit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing run id")
		return
	}

	resp, err := h.getRun(reqCtx(r), &runReq{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status  string `json:"status"`
	Regions int    `json:"regions"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Regions: len(h.reg.Regions()),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
