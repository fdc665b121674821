package person

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

// NewRepository creates a new MongoDB-backed person repository.
func NewRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// FindAll returns all persons.
func (r *MongoRepository) FindAll(ctx context.Context) ([]Person, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}

	var persons []Person
	if err := cur.All(ctx, &persons); err != nil {
		return nil, fmt.Errorf("decoding persons: %w", err)
	}
	if persons == nil {
		persons = []Person{}
	}
	return persons, nil
}

// FindByID retrieves a person by ID. A malformed ID is reported the same
// way as an absent one.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Person, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p Person
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding person: %w", err)
	}
	return &p, nil
}

// Create inserts a new person. The ID is generated if unset, and nil
// embedded collections are normalised to empty arrays so stored documents
// always carry both fields.
func (r *MongoRepository) Create(ctx context.Context, p *Person) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Roles == nil {
		p.Roles = []Role{}
	}
	if p.Dependents == nil {
		p.Dependents = []Dependent{}
	}

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("creating person: %w", err)
	}
	return nil
}

// UpdateByID replaces a person's mutable fields.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, p *Person) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "firstName", Value: p.FirstName},
			{Key: "lastName", Value: p.LastName},
			{Key: "roles", Value: p.Roles},
			{Key: "dependents", Value: p.Dependents},
			{Key: "birthDate", Value: p.BirthDate},
		}}},
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	p.ID = oid
	return nil
}

// DeleteByID removes a person by ID, along with every embedded role and
// dependent.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
