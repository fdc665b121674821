// Package shopper provides the customer model and repository.
//
// Invoices are embedded sub-documents addressed through the customer's
// userName. Appends go through the atomic array mutator in package subdoc,
// never through a read-modify-write of the whole customer. Note that
// userName is a lookup key only — the store does not enforce customer
// userName uniqueness.
package shopper
