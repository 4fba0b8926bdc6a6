package broadcast

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
)

// RegisterRoutes mounts the sync endpoints on router. /stage/sync is the
// default session.
func RegisterRoutes(router *mux.Router, store *Store) {
	h := handler{store: store}
	router.HandleFunc("/sessions", h.handleCreate).Methods("POST")
	router.HandleFunc("/sessions/{session}", h.handleClose).Methods("DELETE")
	router.HandleFunc("/sessions/{session}/state", h.handleGet).Methods("GET")
	router.HandleFunc("/sessions/{session}/state", h.handlePublish).Methods("POST")
	router.HandleFunc("/stage/sync", h.handleGet).Methods("GET")
	router.HandleFunc("/stage/sync", h.handlePublish).Methods("POST")
}

type handler struct {
	store *Store
}

func sessionId(r *http.Request) string {
	if id, ok := mux.Vars(r)["session"]; ok {
		return id
	}
	return constants.DefaultSession
}

func (h handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.store.Create())
}

func (h handler) handleClose(w http.ResponseWriter, r *http.Request) {
	id := sessionId(r)
	if _, err := h.store.State(id); err != nil {
		writeError(w, err)
		return
	}
	h.store.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h handler) handleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.State(sessionId(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Failed to update stage state"})
		return
	}
	var patch model.StatePatch
	if err := json.Unmarshal(body, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Failed to update stage state"})
		return
	}

	state, err := h.store.Publish(sessionId(r), r.Header.Get(HostTokenHeader), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PublishResponse{Success: true, State: state})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownSession):
		status = http.StatusNotFound
	case errors.Is(err, ErrNotHost):
		status = http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
