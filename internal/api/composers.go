package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcollard/maestro/internal/composer"
)

// composerRequest is the request body for creating or updating a composer.
type composerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (req *composerRequest) validate() string {
	if req.FirstName == "" {
		return "firstName is required"
	}
	if req.LastName == "" {
		return "lastName is required"
	}
	return ""
}

// handleListComposers returns all composers.
func (s *Server) handleListComposers(w http.ResponseWriter, r *http.Request) {
	composers, err := s.composers.FindAll(r.Context())
	if err != nil {
		s.storeError(w, r, "listing composers", err)
		return
	}
	writeJSON(w, http.StatusOK, composers)
}

// handleGetComposer returns a single composer by ID.
func (s *Server) handleGetComposer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := s.composers.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, composer.ErrNotFound) {
			writeRejected(w, "invalid composerId")
			return
		}
		s.storeError(w, r, "finding composer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleCreateComposer creates a new composer.
func (s *Server) handleCreateComposer(w http.ResponseWriter, r *http.Request) {
	var req composerRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	c := &composer.Composer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.composers.Create(r.Context(), c); err != nil {
		s.storeError(w, r, "creating composer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleUpdateComposer replaces a composer's name fields by ID.
func (s *Server) handleUpdateComposer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req composerRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	c := &composer.Composer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.composers.UpdateByID(r.Context(), id, c); err != nil {
		if errors.Is(err, composer.ErrNotFound) {
			writeRejected(w, "invalid composerId")
			return
		}
		s.storeError(w, r, "updating composer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleDeleteComposer removes a composer by ID.
func (s *Server) handleDeleteComposer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.composers.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, composer.ErrNotFound) {
			writeRejected(w, "invalid composerId")
			return
		}
		s.storeError(w, r, "deleting composer", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "composer deleted"})
}
