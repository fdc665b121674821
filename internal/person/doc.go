// Package person provides the person model and repository.
//
// Roles and dependents are embedded sub-documents owned by their person;
// they have no independent existence.
package person
