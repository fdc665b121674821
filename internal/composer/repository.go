package composer

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewRepository creates a new MongoDB-backed composer repository.
func NewRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// FindAll returns all composers.
func (r *MongoRepository) FindAll(ctx context.Context) ([]Composer, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing composers: %w", err)
	}

	var composers []Composer
	if err := cur.All(ctx, &composers); err != nil {
		return nil, fmt.Errorf("decoding composers: %w", err)
	}
	if composers == nil {
		composers = []Composer{}
	}
	return composers, nil
}

// FindByID retrieves a composer by ID. A malformed ID is reported the same
// way as an absent one.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Composer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var c Composer
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding composer: %w", err)
	}
	return &c, nil
}

// Create inserts a new composer. The ID is generated if unset.
func (r *MongoRepository) Create(ctx context.Context, c *Composer) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("creating composer: %w", err)
	}
	return nil
}

// UpdateByID modifies a composer's name fields.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, c *Composer) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "firstName", Value: c.FirstName},
			{Key: "lastName", Value: c.LastName},
		}}},
	)
	if err != nil {
		return fmt.Errorf("updating composer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	c.ID = oid
	return nil
}

// DeleteByID removes a composer by ID.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("deleting composer: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
