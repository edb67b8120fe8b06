package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	auditservice "stockroom/contexts/inventory-ops/audit-service"
	auditports "stockroom/contexts/inventory-ops/audit-service/ports"
	inventoryservice "stockroom/contexts/inventory-ops/inventory-service"
	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	inventoryports "stockroom/contexts/inventory-ops/inventory-service/ports"
	httptransport "stockroom/contexts/inventory-ops/inventory-service/transport/http"
)

// auditBridge mirrors the composition-root wiring: inventory mutations are
// recorded through the audit application service.
type auditBridge struct {
	audit auditservice.Module
}

func (b auditBridge) Record(ctx context.Context, entry inventoryports.EventEntry) error {
	_, err := b.audit.Service.Append(ctx, auditports.EventLog{
		EventType:   entry.EventType,
		Timestamp:   entry.Timestamp,
		User:        entry.User,
		ProductID:   entry.ProductID,
		Data:        entry.Data,
		Description: entry.Description,
	})
	return err
}

func newModules() (inventoryservice.Module, auditservice.Module) {
	audit := auditservice.NewInMemoryModule(nil)
	inventory := inventoryservice.NewInMemoryModule(auditBridge{audit: audit}, nil)
	return inventory, audit
}

func TestCreateProductWritesAuditRecord(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	resp, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Monitor",
		Quantity: 12,
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if resp.ID == "" {
		t.Fatalf("expected generated product id")
	}
	if resp.Name != "Monitor" || resp.Quantity != 12 || resp.Category != "Electronics" {
		t.Fatalf("unexpected product echo: %+v", resp)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(events))
	}
	ev := events[0]
	if ev.EventType != "CREATE_PRODUCT" {
		t.Fatalf("unexpected event type %q", ev.EventType)
	}
	if ev.ProductID != resp.ID {
		t.Fatalf("audit record references product %q, want %q", ev.ProductID, resp.ID)
	}
	if ev.User != "admin" {
		t.Fatalf("unexpected audit actor %q", ev.User)
	}
	if ev.Description != "Product created successfully" {
		t.Fatalf("unexpected audit description %q", ev.Description)
	}
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	if _, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Keyboard",
		Quantity: 4,
		Category: "Electronics",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Keyboard",
		Quantity: 9,
		Category: "Accessories",
	})
	if !errors.Is(err, domainerrors.ErrProductExists) {
		t.Fatalf("expected duplicate name conflict, got %v", err)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("rejected create must not add an audit record, got %d", len(events))
	}
}

func TestCreateProductRejectsNegativeQuantity(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	_, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Desk",
		Quantity: -1,
		Category: "Furniture",
	})
	if !errors.Is(err, domainerrors.ErrNegativeQuantity) {
		t.Fatalf("expected negative quantity rejection, got %v", err)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("rejected create must not add audit records, got %d", len(events))
	}
}

func TestCreateProductRequiresNameAndCategory(t *testing.T) {
	inventory, _ := newModules()
	ctx := context.Background()

	_, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "  ",
		Quantity: 2,
		Category: "Furniture",
	})
	if !errors.Is(err, domainerrors.ErrInvalidProduct) {
		t.Fatalf("expected invalid product for blank name, got %v", err)
	}

	_, err = inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Desk",
		Quantity: 2,
	})
	if !errors.Is(err, domainerrors.ErrInvalidProduct) {
		t.Fatalf("expected invalid product for blank category, got %v", err)
	}
}

func TestListProductsPaginates(t *testing.T) {
	inventory, _ := newModules()
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		if _, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
			Name:     fmt.Sprintf("widget-%02d", i),
			Quantity: i,
			Category: "Widgets",
		}); err != nil {
			t.Fatalf("seed create %d failed: %v", i, err)
		}
	}

	resp, err := inventory.Handler.ListProductsHandler(ctx, httptransport.ListProductsRequest{})
	if err != nil {
		t.Fatalf("default list failed: %v", err)
	}
	if resp.Page != 1 || resp.TotalCount != 11 || resp.TotalPages != 2 {
		t.Fatalf("unexpected default page metadata: %+v", resp)
	}
	if len(resp.Data) != 10 {
		t.Fatalf("expected 10 items on default page, got %d", len(resp.Data))
	}

	resp, err = inventory.Handler.ListProductsHandler(ctx, httptransport.ListProductsRequest{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("page 2 list failed: %v", err)
	}
	if resp.Page != 2 || resp.TotalCount != 11 || resp.TotalPages != 3 {
		t.Fatalf("unexpected page 2 metadata: %+v", resp)
	}
	if len(resp.Data) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(resp.Data))
	}
	if resp.Data[0].Name != "widget-05" {
		t.Fatalf("expected page 2 to start at widget-05, got %q", resp.Data[0].Name)
	}

	resp, err = inventory.Handler.ListProductsHandler(ctx, httptransport.ListProductsRequest{Page: 9, Limit: 5})
	if err != nil {
		t.Fatalf("out-of-range list failed: %v", err)
	}
	if len(resp.Data) != 0 || resp.TotalCount != 11 {
		t.Fatalf("out-of-range page must be empty with full count, got %+v", resp)
	}
}

func TestUpdateQuantityRecordsScalarPayload(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	created, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Lamp",
		Quantity: 2,
		Category: "Furniture",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := inventory.Handler.UpdateProductHandler(ctx, created.ID, httptransport.UpdateProductRequest{Quantity: 7})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", updated.Quantity)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected create + update records, got %d", len(events))
	}
	ev := events[0]
	if ev.EventType != "UPDATE_PRODUCT" {
		t.Fatalf("expected newest event UPDATE_PRODUCT, got %q", ev.EventType)
	}
	quantity, ok := ev.Data.(int)
	if !ok || quantity != 7 {
		t.Fatalf("update payload must be the new quantity, got %#v", ev.Data)
	}
}

func TestUpdateQuantityRejectsNegative(t *testing.T) {
	inventory, _ := newModules()
	ctx := context.Background()

	created, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Chair",
		Quantity: 5,
		Category: "Furniture",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = inventory.Handler.UpdateProductHandler(ctx, created.ID, httptransport.UpdateProductRequest{Quantity: -3})
	if !errors.Is(err, domainerrors.ErrNegativeQuantity) {
		t.Fatalf("expected negative quantity rejection, got %v", err)
	}

	current, err := inventory.Handler.GetProductHandler(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after rejected update failed: %v", err)
	}
	if current.Quantity != 5 {
		t.Fatalf("rejected update must not change quantity, got %d", current.Quantity)
	}
}

func TestDeleteProductGuardsPositiveQuantity(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	created, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Cable",
		Quantity: 3,
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = inventory.Handler.DeleteProductHandler(ctx, created.ID)
	if !errors.Is(err, domainerrors.ErrProductHasStock) {
		t.Fatalf("expected stocked product delete rejection, got %v", err)
	}

	if _, err := inventory.Handler.GetProductHandler(ctx, created.ID); err != nil {
		t.Fatalf("rejected delete must leave product retrievable: %v", err)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("rejected delete must not add audit records, got %d", len(events))
	}
}

func TestDeleteProductRemovesAndLogs(t *testing.T) {
	inventory, audit := newModules()
	ctx := context.Background()

	created, err := inventory.Handler.CreateProductHandler(ctx, httptransport.CreateProductRequest{
		Name:     "Adapter",
		Quantity: 0,
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resp, err := inventory.Handler.DeleteProductHandler(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if resp.Message != "Product deleted successfully" {
		t.Fatalf("unexpected delete confirmation %q", resp.Message)
	}

	if _, err := inventory.Handler.GetProductHandler(ctx, created.ID); !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected product gone after delete, got %v", err)
	}

	events, err := audit.Service.ListAll(ctx)
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected create + delete records, got %d", len(events))
	}
	if events[0].EventType != "DELETE_PRODUCT" {
		t.Fatalf("expected newest event DELETE_PRODUCT, got %q", events[0].EventType)
	}
}

func TestFilterProductsByCategoryAndQuantity(t *testing.T) {
	inventory, _ := newModules()
	ctx := context.Background()

	seed := []httptransport.CreateProductRequest{
		{Name: "Monitor", Quantity: 5, Category: "Electronics"},
		{Name: "Keyboard", Quantity: 10, Category: "electronics"},
		{Name: "Desk", Quantity: 2, Category: "Furniture"},
	}
	for _, req := range seed {
		if _, err := inventory.Handler.CreateProductHandler(ctx, req); err != nil {
			t.Fatalf("seed create %q failed: %v", req.Name, err)
		}
	}

	threshold := 10
	items, err := inventory.Handler.FilterProductsHandler(ctx, httptransport.FilterProductsRequest{
		Category:    "ELECTRO",
		MaxQuantity: &threshold,
	})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Monitor" {
		t.Fatalf("expected only Monitor below threshold in matching category, got %+v", items)
	}

	items, err = inventory.Handler.FilterProductsHandler(ctx, httptransport.FilterProductsRequest{Category: "furniture"})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Desk" {
		t.Fatalf("expected case-insensitive category match, got %+v", items)
	}
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	inventory, _ := newModules()

	_, err := inventory.Handler.GetProductHandler(context.Background(), "not-a-uuid")
	if !errors.Is(err, domainerrors.ErrInvalidProductID) {
		t.Fatalf("expected malformed id rejection, got %v", err)
	}
}
