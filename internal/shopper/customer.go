package shopper

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for customer operations.
var (
	// ErrNotFound is returned when no customer matches the requested
	// ID or userName.
	ErrNotFound = errors.New("shopper: customer not found")
)

// Customer represents a customer record with embedded invoices.
//
// userName is the external lookup key for invoice operations. Invoices are
// owned exclusively by their customer; deleting the customer removes them.
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	UserName  string             `bson:"userName" json:"userName"`
	Invoices  []Invoice          `bson:"invoices" json:"invoices"`
}

// Invoice is an order embedded in a customer document.
type Invoice struct {
	Subtotal    float64    `bson:"subtotal" json:"subtotal"`
	Tax         float64    `bson:"tax" json:"tax"`
	DateCreated string     `bson:"dateCreated" json:"dateCreated"`
	DateShipped string     `bson:"dateShipped" json:"dateShipped"`
	LineItems   []LineItem `bson:"lineItems" json:"lineItems"`
}

// LineItem is a single purchased item on an invoice.
type LineItem struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Repository defines the interface for customer persistence, including the
// nested invoice operations.
type Repository interface {
	FindAll(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByUserName(ctx context.Context, userName string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	UpdateByID(ctx context.Context, id string, c *Customer) error
	DeleteByID(ctx context.Context, id string) error

	// AddInvoice atomically appends an invoice to the customer with the
	// given userName. Returns subdoc.ErrParentNotFound if no such
	// customer exists; the customer is never created implicitly.
	AddInvoice(ctx context.Context, userName string, inv Invoice) error

	// Invoices returns the invoices of the customer with the given
	// userName. Returns subdoc.ErrParentNotFound if no such customer
	// exists.
	Invoices(ctx context.Context, userName string) ([]Invoice, error)
}
