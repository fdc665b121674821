// Package roster provides the team model and repository.
//
// Players are embedded sub-documents with no identity outside their team.
// Roster appends go through the atomic array mutator in package subdoc.
package roster
