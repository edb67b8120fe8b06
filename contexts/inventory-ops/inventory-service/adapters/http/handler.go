package httpadapter

import (
	"context"
	"log/slog"

	"stockroom/contexts/inventory-ops/inventory-service/application"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
	httptransport "stockroom/contexts/inventory-ops/inventory-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateProductHandler(ctx context.Context, req httptransport.CreateProductRequest) (httptransport.ProductDTO, error) {
	product, err := h.Service.CreateProduct(ctx, ports.CreateProductInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	})
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(product), nil
}

func (h Handler) GetProductHandler(ctx context.Context, productID string) (httptransport.ProductDTO, error) {
	product, err := h.Service.GetProduct(ctx, productID)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(product), nil
}

func (h Handler) ListProductsHandler(ctx context.Context, req httptransport.ListProductsRequest) (httptransport.ListProductsResponse, error) {
	page := req.Page
	if page < 1 {
		page = application.DefaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = application.DefaultLimit
	}

	items, total, err := h.Service.ListProducts(ctx, page, limit)
	if err != nil {
		return httptransport.ListProductsResponse{}, err
	}

	resp := httptransport.ListProductsResponse{
		Page:       page,
		TotalCount: total,
		Data:       make([]httptransport.ProductDTO, 0, len(items)),
	}
	resp.TotalPages = total / limit
	if total%limit != 0 {
		resp.TotalPages++
	}
	for _, item := range items {
		resp.Data = append(resp.Data, toProductDTO(item))
	}
	return resp, nil
}

func (h Handler) FilterProductsHandler(ctx context.Context, req httptransport.FilterProductsRequest) ([]httptransport.ProductDTO, error) {
	items, err := h.Service.FilterProducts(ctx, ports.ProductFilter{
		Category:    req.Category,
		MaxQuantity: req.MaxQuantity,
	})
	if err != nil {
		return nil, err
	}

	data := make([]httptransport.ProductDTO, 0, len(items))
	for _, item := range items {
		data = append(data, toProductDTO(item))
	}
	return data, nil
}

func (h Handler) UpdateProductHandler(ctx context.Context, productID string, req httptransport.UpdateProductRequest) (httptransport.ProductDTO, error) {
	product, err := h.Service.UpdateQuantity(ctx, productID, req.Quantity)
	if err != nil {
		return httptransport.ProductDTO{}, err
	}
	return toProductDTO(product), nil
}

func (h Handler) DeleteProductHandler(ctx context.Context, productID string) (httptransport.MessageResponse, error) {
	if _, err := h.Service.DeleteProduct(ctx, productID); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "Product deleted successfully"}, nil
}

func toProductDTO(item ports.Product) httptransport.ProductDTO {
	return httptransport.ProductDTO{
		ID:       item.ProductID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Category: item.Category,
	}
}
