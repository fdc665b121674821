package subdoc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Domain-specific errors for nested document operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrParentNotFound is returned when the parent filter matches no document.
	ErrParentNotFound = errors.New("subdoc: parent document not found")
)

// Collection is the subset of *mongo.Collection the mutator depends on.
// Narrowing the dependency keeps the mutator testable without a live store.
type Collection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Mutator appends elements to array fields embedded in parent documents.
//
// Appends are delegated to the store's atomic $push operator. A
// fetch-modify-save sequence would silently overwrite concurrent sibling
// appends to the same parent; the single-operator update cannot.
type Mutator struct {
	coll Collection
}

// NewMutator creates a Mutator over the given collection.
func NewMutator(coll Collection) *Mutator {
	return &Mutator{coll: coll}
}

// Append atomically adds element to the named array field of the document
// matching filter.
//
// A parent that does not exist is an error, never an implicit upsert.
//
// Returns:
//   - ErrParentNotFound: filter matched no document
//   - error: wrapped driver error if the store operation itself fails
func (m *Mutator) Append(ctx context.Context, filter any, field string, element any) error {
	res, err := m.coll.UpdateOne(ctx, filter,
		bson.D{{Key: "$push", Value: bson.D{{Key: field, Value: element}}}})
	if err != nil {
		return fmt.Errorf("appending to %q: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrParentNotFound
	}
	return nil
}

// ChildArray fetches the named array field of the document matching filter
// and decodes its elements as T.
//
// The read is projected to the single field, so large parents are not
// transferred wholesale. A parent without the field (or with a null field)
// yields an empty, non-nil slice.
//
// Returns:
//   - ErrParentNotFound: filter matched no document
//   - error: wrapped driver or decode error otherwise
func ChildArray[T any](ctx context.Context, coll Collection, filter any, field string) ([]T, error) {
	res := coll.FindOne(ctx, filter,
		options.FindOne().SetProjection(bson.D{{Key: field, Value: 1}}))

	var raw bson.Raw
	if err := res.Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("finding parent for %q: %w", field, err)
	}

	val, err := raw.LookupErr(field)
	if err != nil || val.Type == bson.TypeNull {
		// Parent exists but has no elements yet
		return []T{}, nil
	}

	var out []T
	if err := val.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("decoding %q array: %w", field, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
