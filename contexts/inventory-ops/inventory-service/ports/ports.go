package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Product struct {
	ProductID string
	Name      string
	Quantity  int
	Category  string
}

type CreateProductInput struct {
	Name     string
	Quantity int
	Category string
}

// ProductFilter combines the optional filter dimensions with logical AND.
// MaxQuantity selects products with quantity strictly below the bound.
type ProductFilter struct {
	Category    string
	MaxQuantity *int
}

type Repository interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (Product, error)
	GetProduct(ctx context.Context, productID string) (Product, error)
	ListProducts(ctx context.Context, page int, limit int) ([]Product, int, error)
	FilterProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (Product, error)
	DeleteProduct(ctx context.Context, productID string) (Product, error)
}

// EventEntry is the audit side-channel payload emitted after a successful
// mutation. Data carries the full product snapshot for create/delete and
// the new quantity scalar for update.
type EventEntry struct {
	EventType   string
	Timestamp   time.Time
	User        string
	ProductID   string
	Data        any
	Description string
}

// EventRecorder is best-effort: implementations may fail or skip, and the
// caller must never let that outcome alter the primary mutation result.
type EventRecorder interface {
	Record(ctx context.Context, entry EventEntry) error
}
