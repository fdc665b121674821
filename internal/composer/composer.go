package composer

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for composer operations.
var (
	// ErrNotFound is returned when no composer matches the requested ID.
	ErrNotFound = errors.New("composer: not found")
)

// Composer represents a composer record.
type Composer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
}

// Repository defines the interface for composer persistence.
type Repository interface {
	FindAll(ctx context.Context) ([]Composer, error)
	FindByID(ctx context.Context, id string) (*Composer, error)
	Create(ctx context.Context, c *Composer) error
	UpdateByID(ctx context.Context, id string, c *Composer) error
	DeleteByID(ctx context.Context, id string) error
}
