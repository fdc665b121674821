// Package api provides the HTTP REST API server for Maestro.
//
// It exposes CRUD endpoints for composers, customers, persons, teams, and
// users, nested sub-document routes for invoices and players, and the
// signup/login session endpoints.
//
// The server follows the same lifecycle pattern as the infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Status code contract: 200 success, 401 domain-level rejection (unknown
// id or username, username taken, invalid credentials), 500 unexpected
// local failure, 501 document store failure. Store errors are logged in
// full server-side and never echoed into response bodies.
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
