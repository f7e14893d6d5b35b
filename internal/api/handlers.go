package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"todopix/internal/store"
	"todopix/internal/upload"
)

// Handlers bundles the HTTP handlers with their dependencies. Each test
// constructs its own Handlers around a fresh store, so nothing here is
// package-level state.
type Handlers struct {
	store store.Store
	saver *upload.Saver
}

func NewHandlers(s store.Store, saver *upload.Saver) *Handlers {
	return &Handlers{store: s, saver: saver}
}

// TodosHandler routes /todos: GET for list, POST for create.
func (h *Handlers) TodosHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTodos(w, r)
	case http.MethodPost:
		h.createTodo(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) listTodos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.store.List())
}

// createTodo accepts a multipart form with a required "text" field and an
// optional "photo" file. Text is validated before the photo is written to
// disk, so a rejected request leaves no orphaned file behind.
func (h *Handlers) createTodo(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	text := r.FormValue("text")
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	var image *string
	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		ref, err := h.saver.Save(file, header.Filename)
		if err != nil {
			log.Printf("saving photo: %v", err)
			writeError(w, http.StatusInternalServerError, "could not store photo")
			return
		}
		image = &ref
	case errors.Is(err, http.ErrMissingFile):
		// No photo attached; the item is text-only.
	default:
		writeError(w, http.StatusBadRequest, "invalid photo field")
		return
	}

	item, err := h.store.Append(text, image)
	if err != nil {
		// Unreachable after the trim check above, but the store's verdict
		// stays authoritative.
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
