// Package database manages the MongoDB connection lifecycle for Maestro.
//
// It owns connect, ping, and disconnect; repositories receive collection
// handles from an open DB rather than reaching for a global client. The
// connection pool inside the driver handles per-request concurrency.
package database
