package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/internal/gateway"
	"github.com/sandevgo/coregate/pkg/log"
)

const defaultContextLimit = 3

type processRequest struct {
	Module string         `json:"module"`
	Intent string         `json:"intent"`
	UserID string         `json:"user_id"`
	Data   map[string]any `json:"data"`
}

type Handlers struct {
	gw    *gateway.Gateway
	store core.InteractionRepository
}

func NewHandlers(gw *gateway.Gateway, store core.InteractionRepository) *Handlers {
	return &Handlers{gw: gw, store: store}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": core.CoregateVersion})
}

func (h *Handlers) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, core.NewError("invalid request body"))
		return
	}

	resp := h.gw.ProcessRequest(r.Context(), req.Module, req.Intent, req.UserID, req.Data)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, core.NewError("invalid request body"))
		return
	}

	userID, _ := data["user_id"].(string)
	resp := h.gw.ProcessRequest(r.Context(), "creator", gateway.IntentFeedback, userID, data)

	status := http.StatusOK
	if resp.Status == core.StatusError {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (h *Handlers) Context(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := defaultContextLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	var interactions []core.Interaction
	var err error
	if module := r.URL.Query().Get("module"); module != "" {
		interactions, err = h.store.GetModuleContext(r.Context(), userID, module, limit)
	} else {
		interactions, err = h.store.GetContext(r.Context(), userID, limit)
	}
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("context read failed")
		writeJSON(w, http.StatusInternalServerError, core.NewError("context unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"context": interactions})
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	history, err := h.store.GetUserHistory(r.Context(), userID)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("history read failed")
		writeJSON(w, http.StatusInternalServerError, core.NewError("history unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
