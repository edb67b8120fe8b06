package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

// Store keeps products in process memory. Each public operation is atomic
// with respect to its own record, matching the single-request-per-record
// model the service assumes.
type Store struct {
	mu       sync.RWMutex
	products map[string]ports.Product
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]ports.Product),
	}
}

func (s *Store) CreateProduct(ctx context.Context, input ports.CreateProductInput) (ports.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.products {
		if item.Name == input.Name {
			return ports.Product{}, domainerrors.ErrProductExists
		}
	}

	product := ports.Product{
		ProductID: uuid.NewString(),
		Name:      input.Name,
		Quantity:  input.Quantity,
		Category:  input.Category,
	}
	s.products[product.ProductID] = product
	return product, nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return ports.Product{}, domainerrors.ErrProductNotFound
	}
	return product, nil
}

func (s *Store) ListProducts(ctx context.Context, page int, limit int) ([]ports.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.sortedProducts()
	total := len(items)

	start := (page - 1) * limit
	if start >= total {
		return []ports.Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return append([]ports.Product(nil), items[start:end]...), total, nil
}

func (s *Store) FilterProducts(ctx context.Context, filter ports.ProductFilter) ([]ports.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := strings.ToLower(strings.TrimSpace(filter.Category))

	items := make([]ports.Product, 0)
	for _, item := range s.sortedProducts() {
		if category != "" && !strings.Contains(strings.ToLower(item.Category), category) {
			continue
		}
		if filter.MaxQuantity != nil && item.Quantity >= *filter.MaxQuantity {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return ports.Product{}, domainerrors.ErrProductNotFound
	}
	product.Quantity = quantity
	s.products[productID] = product
	return product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return ports.Product{}, domainerrors.ErrProductNotFound
	}
	if product.Quantity > 0 {
		return ports.Product{}, domainerrors.ErrProductHasStock
	}
	delete(s.products, productID)
	return product, nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// sortedProducts returns the stable name-ascending order used for listing,
// so pagination pages stay disjoint. Callers must hold at least a read lock.
func (s *Store) sortedProducts() []ports.Product {
	items := make([]ports.Product, 0, len(s.products))
	for _, item := range s.products {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

func validateID(productID string) error {
	if _, err := uuid.Parse(productID); err != nil {
		return domainerrors.ErrInvalidProductID
	}
	return nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
