package api

import (
	"net/http"

	"github.com/dcollard/maestro/internal/person"
)

// personRequest is the request body for creating a person.
type personRequest struct {
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Roles      []person.Role      `json:"roles"`
	Dependents []person.Dependent `json:"dependents"`
	BirthDate  string             `json:"birthDate"`
}

func (req *personRequest) validate() string {
	if req.FirstName == "" {
		return "firstName is required"
	}
	if req.LastName == "" {
		return "lastName is required"
	}
	return ""
}

// handleListPersons returns all persons.
func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := s.persons.FindAll(r.Context())
	if err != nil {
		s.storeError(w, r, "listing persons", err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// handleCreatePerson creates a new person with embedded roles and dependents.
func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	p := &person.Person{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Roles:      req.Roles,
		Dependents: req.Dependents,
		BirthDate:  req.BirthDate,
	}
	if err := s.persons.Create(r.Context(), p); err != nil {
		s.storeError(w, r, "creating person", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
