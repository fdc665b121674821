package shopper

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dcollard/maestro/internal/subdoc"
)

// invoicesField is the array field holding embedded invoices.
const invoicesField = "invoices"

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	coll    *mongo.Collection
	mutator *subdoc.Mutator
}

// NewRepository creates a new MongoDB-backed customer repository.
func NewRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{
		coll:    coll,
		mutator: subdoc.NewMutator(coll),
	}
}

// FindAll returns all customers.
func (r *MongoRepository) FindAll(ctx context.Context) ([]Customer, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	var customers []Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decoding customers: %w", err)
	}
	if customers == nil {
		customers = []Customer{}
	}
	return customers, nil
}

// FindByID retrieves a customer by ID. A malformed ID is reported the same
// way as an absent one.
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.getCustomer(ctx, bson.D{{Key: "_id", Value: oid}})
}

// FindByUserName retrieves a customer by userName.
func (r *MongoRepository) FindByUserName(ctx context.Context, userName string) (*Customer, error) {
	return r.getCustomer(ctx, bson.D{{Key: "userName", Value: userName}})
}

// Create inserts a new customer. The ID is generated if unset and a nil
// invoice list is normalised to an empty array.
func (r *MongoRepository) Create(ctx context.Context, c *Customer) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Invoices == nil {
		c.Invoices = []Invoice{}
	}

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}
	return nil
}

// UpdateByID modifies a customer's name and userName fields. The invoice
// list is only ever changed through AddInvoice.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, c *Customer) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "firstName", Value: c.FirstName},
			{Key: "lastName", Value: c.LastName},
			{Key: "userName", Value: c.UserName},
		}}},
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	c.ID = oid
	return nil
}

// DeleteByID removes a customer by ID, along with every embedded invoice.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddInvoice atomically appends an invoice to the named customer's
// invoices array.
func (r *MongoRepository) AddInvoice(ctx context.Context, userName string, inv Invoice) error {
	if inv.LineItems == nil {
		inv.LineItems = []LineItem{}
	}
	return r.mutator.Append(ctx,
		bson.D{{Key: "userName", Value: userName}}, invoicesField, inv)
}

// Invoices returns the named customer's invoices.
func (r *MongoRepository) Invoices(ctx context.Context, userName string) ([]Invoice, error) {
	return subdoc.ChildArray[Invoice](ctx, r.coll,
		bson.D{{Key: "userName", Value: userName}}, invoicesField)
}

// getCustomer executes a single-document query.
func (r *MongoRepository) getCustomer(ctx context.Context, filter bson.D) (*Customer, error) {
	var c Customer
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding customer: %w", err)
	}
	return &c, nil
}
