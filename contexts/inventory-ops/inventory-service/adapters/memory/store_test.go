package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

func TestStoreCreateRejectsDuplicateNameWithoutSideEffects(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.CreateProduct(ctx, ports.CreateProductInput{Name: "Monitor", Quantity: 3, Category: "Electronics"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := store.CreateProduct(ctx, ports.CreateProductInput{Name: "Monitor", Quantity: 8, Category: "Other"})
	if !errors.Is(err, domainerrors.ErrProductExists) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, total, err := store.ListProducts(ctx, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("rejected create must not change the store, total %d", total)
	}
}

func TestStoreListPaginatesInNameOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := store.CreateProduct(ctx, ports.CreateProductInput{
			Name:     fmt.Sprintf("item-%d", i),
			Quantity: i,
			Category: "General",
		}); err != nil {
			t.Fatalf("seed create %d failed: %v", i, err)
		}
	}

	items, total, err := store.ListProducts(ctx, 2, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items on page 2, got %d", len(items))
	}
	if items[0].Name != "item-3" || items[2].Name != "item-5" {
		t.Fatalf("unexpected page 2 window: %+v", items)
	}

	items, total, err = store.ListProducts(ctx, 4, 3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 || total != 7 {
		t.Fatalf("out-of-range page must be empty with full count, got %d items total %d", len(items), total)
	}
}

func TestStoreFilterUsesStrictQuantityBound(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seed := []ports.CreateProductInput{
		{Name: "below", Quantity: 9, Category: "Bin"},
		{Name: "equal", Quantity: 10, Category: "Bin"},
		{Name: "above", Quantity: 11, Category: "Bin"},
	}
	for _, input := range seed {
		if _, err := store.CreateProduct(ctx, input); err != nil {
			t.Fatalf("seed create %q failed: %v", input.Name, err)
		}
	}

	threshold := 10
	items, err := store.FilterProducts(ctx, ports.ProductFilter{MaxQuantity: &threshold})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "below" {
		t.Fatalf("quantity bound must be strict, got %+v", items)
	}
}

func TestStoreDeleteValidatesIDFormat(t *testing.T) {
	store := NewStore()

	_, err := store.DeleteProduct(context.Background(), "nope")
	if !errors.Is(err, domainerrors.ErrInvalidProductID) {
		t.Fatalf("expected malformed id rejection, got %v", err)
	}
}
