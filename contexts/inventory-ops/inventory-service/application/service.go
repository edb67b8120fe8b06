package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

const (
	EventCreateProduct = "CREATE_PRODUCT"
	EventUpdateProduct = "UPDATE_PRODUCT"
	EventDeleteProduct = "DELETE_PRODUCT"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Service sequences each product mutation with exactly one audit record.
// The store result is authoritative: audit failures are logged and dropped,
// never surfaced to the caller.
type Service struct {
	Repo   ports.Repository
	Events ports.EventRecorder
	Clock  ports.Clock
	Actor  string
	Logger *slog.Logger
}

func (s Service) CreateProduct(ctx context.Context, input ports.CreateProductInput) (ports.Product, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return ports.Product{}, domainerrors.ErrInvalidProduct
	}
	if input.Quantity < 0 {
		return ports.Product{}, domainerrors.ErrNegativeQuantity
	}

	product, err := s.Repo.CreateProduct(ctx, input)
	if err != nil {
		return ports.Product{}, err
	}

	s.recordEvent(ctx, EventCreateProduct, product.ProductID, product, "Product created successfully")
	return product, nil
}

func (s Service) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	return s.Repo.GetProduct(ctx, productID)
}

// ListProducts clamps page and limit to their defaults before hitting the
// store, so invalid input never reaches the query layer.
func (s Service) ListProducts(ctx context.Context, page int, limit int) ([]ports.Product, int, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return s.Repo.ListProducts(ctx, page, limit)
}

func (s Service) FilterProducts(ctx context.Context, filter ports.ProductFilter) ([]ports.Product, error) {
	return s.Repo.FilterProducts(ctx, filter)
}

func (s Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (ports.Product, error) {
	if quantity < 0 {
		return ports.Product{}, domainerrors.ErrNegativeQuantity
	}

	product, err := s.Repo.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		return ports.Product{}, err
	}

	s.recordEvent(ctx, EventUpdateProduct, product.ProductID, product.Quantity, "Product updated successfully")
	return product, nil
}

func (s Service) DeleteProduct(ctx context.Context, productID string) (ports.Product, error) {
	product, err := s.Repo.DeleteProduct(ctx, productID)
	if err != nil {
		return ports.Product{}, err
	}

	s.recordEvent(ctx, EventDeleteProduct, product.ProductID, product, "Product deleted successfully")
	return product, nil
}

func (s Service) recordEvent(ctx context.Context, eventType string, productID string, data any, description string) {
	if s.Events == nil {
		return
	}
	entry := ports.EventEntry{
		EventType:   eventType,
		Timestamp:   s.now(),
		User:        s.actor(),
		ProductID:   productID,
		Data:        data,
		Description: description,
	}
	if err := s.Events.Record(ctx, entry); err != nil {
		ResolveLogger(s.Logger).Warn("audit record dropped",
			"event", "inventory_audit_record_failed",
			"module", "inventory-ops/inventory-service",
			"layer", "application",
			"event_type", eventType,
			"product_id", productID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) actor() string {
	if strings.TrimSpace(s.Actor) == "" {
		return "admin"
	}
	return s.Actor
}
