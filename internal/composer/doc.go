// Package composer provides the composer model and repository.
package composer
