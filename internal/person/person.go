package person

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for person operations.
var (
	// ErrNotFound is returned when no person matches the requested ID.
	ErrNotFound = errors.New("person: not found")
)

// Person represents a person record with embedded roles and dependents.
// Embedded elements live and die with the person document.
type Person struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	Roles      []Role             `bson:"roles" json:"roles"`
	Dependents []Dependent        `bson:"dependents" json:"dependents"`
	BirthDate  string             `bson:"birthDate" json:"birthDate"`
}

// Role is a role held by a person.
type Role struct {
	Text string `bson:"text" json:"text"`
}

// Dependent is a dependent of a person.
type Dependent struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}

// Repository defines the interface for person persistence.
type Repository interface {
	FindAll(ctx context.Context) ([]Person, error)
	FindByID(ctx context.Context, id string) (*Person, error)
	Create(ctx context.Context, p *Person) error
	UpdateByID(ctx context.Context, id string, p *Person) error
	DeleteByID(ctx context.Context, id string) error
}
