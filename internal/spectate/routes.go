package spectate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Philser/roguelike/internal/store"

	"github.com/gorilla/mux"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

// NewRouter routes the spectator socket alongside the run history API:
//
//	GET /spectate        websocket frames (optional ?session=<id>)
//	GET /runs?limit=N    newest run records
//	GET /runs/{id}       one run record
//	GET /health
//
// runs may be nil, in which case the history routes are not registered.
func NewRouter(hub *Hub, runs store.Store) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/spectate", hub).Methods(http.MethodGet)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	if runs != nil {
		h := &runsHandler{runs: runs, hub: hub}
		r.HandleFunc("/runs", enableCORS(h.list)).Methods(http.MethodGet)
		r.HandleFunc("/runs/{id}", enableCORS(h.get)).Methods(http.MethodGet)
	}
	return r
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type runsHandler struct {
	runs store.Store
	hub  *Hub
}

func (h *runsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxRunLimit)
	}
	recs, err := h.runs.Recent(limit)
	if err != nil {
		h.hub.log.WithError(err).Error("list runs")
		http.Error(w, "could not read run history", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []store.RunRecord{}
	}
	writeJSON(w, recs)
}

func (h *runsHandler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.runs.Get(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "run not found", http.StatusNotFound)
		return
	case err != nil:
		h.hub.log.WithError(err).Error("get run")
		http.Error(w, "could not read run history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
