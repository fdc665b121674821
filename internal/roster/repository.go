package roster

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dcollard/maestro/internal/subdoc"
)

// playersField is the array field holding the embedded roster.
const playersField = "players"

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll    *mongo.Collection
	mutator *subdoc.Mutator
}

// NewRepository creates a new MongoDB-backed team repository.
func NewRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{
		coll:    coll,
		mutator: subdoc.NewMutator(coll),
	}
}

// FindAll returns all teams.
func (r *MongoRepository) FindAll(ctx context.Context) ([]Team, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}

	var teams []Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
	}
	if teams == nil {
		teams = []Team{}
	}
	return teams, nil
}

// FindByID retrieves a team by ID. A malformed ID is reported the same way
// as an absent one.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Team, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var t Team
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding team: %w", err)
	}
	return &t, nil
}

// Create inserts a new team. The ID is generated if unset and a nil roster
// is normalised to an empty array.
func (r *MongoRepository) Create(ctx context.Context, t *Team) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Players == nil {
		t.Players = []Player{}
	}

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("creating team: %w", err)
	}
	return nil
}

// UpdateByID modifies a team's name and mascot. The roster is only ever
// changed through AddPlayer.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, t *Team) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: t.Name},
			{Key: "mascot", Value: t.Mascot},
		}}},
	)
	if err != nil {
		return fmt.Errorf("updating team: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	t.ID = oid
	return nil
}

// DeleteByID removes a team by ID, along with its embedded roster.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPlayer atomically appends a player to the team's roster.
func (r *MongoRepository) AddPlayer(ctx context.Context, id string, p Player) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return subdoc.ErrParentNotFound
	}
	return r.mutator.Append(ctx, bson.D{{Key: "_id", Value: oid}}, playersField, p)
}

// Players returns the team's roster.
func (r *MongoRepository) Players(ctx context.Context, id string) ([]Player, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, subdoc.ErrParentNotFound
	}
	return subdoc.ChildArray[Player](ctx, r.coll, bson.D{{Key: "_id", Value: oid}}, playersField)
}
