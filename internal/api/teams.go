package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcollard/maestro/internal/roster"
	"github.com/dcollard/maestro/internal/subdoc"
)

// teamRequest is the request body for creating a team.
type teamRequest struct {
	Name   string `json:"name"`
	Mascot string `json:"mascot"`
}

func (req *teamRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Mascot == "" {
		return "mascot is required"
	}
	return ""
}

// playerRequest is the request body for adding a player to a team's roster.
// Salary is a pointer so an absent field can be told apart from zero.
type playerRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Salary    *float64 `json:"salary"`
}

func (req *playerRequest) validate() string {
	if req.FirstName == "" {
		return "firstName is required"
	}
	if req.LastName == "" {
		return "lastName is required"
	}
	if req.Salary == nil {
		return "salary is required"
	}
	return ""
}

// handleListTeams returns all teams with their rosters.
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.FindAll(r.Context())
	if err != nil {
		s.storeError(w, r, "listing teams", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// handleCreateTeam creates a new team with an empty roster.
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	t := &roster.Team{
		Name:   req.Name,
		Mascot: req.Mascot,
	}
	if err := s.teams.Create(r.Context(), t); err != nil {
		s.storeError(w, r, "creating team", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleDeleteTeam removes a team by ID and returns the deleted document.
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := s.teams.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			writeRejected(w, "invalid teamId")
			return
		}
		s.storeError(w, r, "finding team", err)
		return
	}

	if err := s.teams.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			writeRejected(w, "invalid teamId")
			return
		}
		s.storeError(w, r, "deleting team", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleAddPlayer appends a player to the team's roster. The team is never
// created implicitly.
func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req playerRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	p := roster.Player{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Salary:    *req.Salary,
	}
	if err := s.teams.AddPlayer(r.Context(), id, p); err != nil {
		if errors.Is(err, subdoc.ErrParentNotFound) {
			writeRejected(w, "invalid teamId")
			return
		}
		s.storeError(w, r, "adding player", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleListPlayers returns the roster of the team addressed by ID.
func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	players, err := s.teams.Players(r.Context(), id)
	if err != nil {
		if errors.Is(err, subdoc.ErrParentNotFound) {
			writeRejected(w, "invalid teamId")
			return
		}
		s.storeError(w, r, "listing players", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}
