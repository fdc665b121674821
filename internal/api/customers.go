package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcollard/maestro/internal/shopper"
	"github.com/dcollard/maestro/internal/subdoc"
)

// customerRequest is the request body for creating a customer.
type customerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

func (req *customerRequest) validate() string {
	if req.FirstName == "" {
		return "firstName is required"
	}
	if req.LastName == "" {
		return "lastName is required"
	}
	if req.UserName == "" {
		return "userName is required"
	}
	return ""
}

// invoiceRequest is the request body for adding an invoice to a customer.
// Subtotal and tax are pointers so that an absent field can be told apart
// from a legitimate zero amount.
type invoiceRequest struct {
	Subtotal    *float64           `json:"subtotal"`
	Tax         *float64           `json:"tax"`
	DateCreated string             `json:"dateCreated"`
	DateShipped string             `json:"dateShipped"`
	LineItems   []shopper.LineItem `json:"lineItems"`
}

func (req *invoiceRequest) validate() string {
	if req.Subtotal == nil {
		return "subtotal is required"
	}
	if req.Tax == nil {
		return "tax is required"
	}
	if req.DateCreated == "" {
		return "dateCreated is required"
	}
	return ""
}

// handleCreateCustomer creates a new customer with an empty invoice list.
func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	c := &shopper.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
	}
	if err := s.customers.Create(r.Context(), c); err != nil {
		s.storeError(w, r, "creating customer", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleCreateInvoice appends an invoice to the customer addressed by
// userName. The customer is never created implicitly.
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "username")

	var req invoiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	inv := shopper.Invoice{
		Subtotal:    *req.Subtotal,
		Tax:         *req.Tax,
		DateCreated: req.DateCreated,
		DateShipped: req.DateShipped,
		LineItems:   req.LineItems,
	}
	if err := s.customers.AddInvoice(r.Context(), userName, inv); err != nil {
		if errors.Is(err, subdoc.ErrParentNotFound) {
			writeRejected(w, "invalid userName")
			return
		}
		s.storeError(w, r, "creating invoice", err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// handleListInvoices returns all invoices belonging to the customer
// addressed by userName.
func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "username")

	invoices, err := s.customers.Invoices(r.Context(), userName)
	if err != nil {
		if errors.Is(err, subdoc.ErrParentNotFound) {
			writeRejected(w, "invalid userName")
			return
		}
		s.storeError(w, r, "listing invoices", err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}
