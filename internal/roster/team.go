package roster

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for team operations.
var (
	// ErrNotFound is returned when no team matches the requested ID.
	ErrNotFound = errors.New("roster: team not found")
)

// Team represents a team record with embedded players.
// Players are owned by the team; deleting the team removes its roster.
type Team struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Mascot  string             `bson:"mascot" json:"mascot"`
	Players []Player           `bson:"players" json:"players"`
}

// Player is a roster entry embedded in a team document.
// Players carry no ID of their own; they are addressed by team membership.
type Player struct {
	FirstName string  `bson:"firstName" json:"firstName"`
	LastName  string  `bson:"lastName" json:"lastName"`
	Salary    float64 `bson:"salary" json:"salary"`
}

// Repository defines the interface for team persistence, including the
// nested player operations.
type Repository interface {
	FindAll(ctx context.Context) ([]Team, error)
	FindByID(ctx context.Context, id string) (*Team, error)
	Create(ctx context.Context, t *Team) error
	UpdateByID(ctx context.Context, id string, t *Team) error
	DeleteByID(ctx context.Context, id string) error

	// AddPlayer atomically appends a player to the team's roster.
	// Returns subdoc.ErrParentNotFound if no such team exists; the team
	// is never created implicitly.
	AddPlayer(ctx context.Context, id string, p Player) error

	// Players returns the team's roster. Returns subdoc.ErrParentNotFound
	// if no such team exists.
	Players(ctx context.Context, id string) ([]Player, error)
}
