package http

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

type CreateProductRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
}

type UpdateProductRequest struct {
	Quantity int `json:"quantity"`
}

type ListProductsRequest struct {
	Page  int
	Limit int
}

type ListProductsResponse struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalCount int          `json:"totalCount"`
	Data       []ProductDTO `json:"data"`
}

type FilterProductsRequest struct {
	Category    string
	MaxQuantity *int
}
