package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	auditservice "stockroom/contexts/inventory-ops/audit-service"
	inventoryservice "stockroom/contexts/inventory-ops/inventory-service"
	inventoryerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	inventoryhttp "stockroom/contexts/inventory-ops/inventory-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "stockroom/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	inventory inventoryservice.Module
	audit     auditservice.Module
}

func New(
	inventory inventoryservice.Module,
	audit auditservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":5000"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		inventory: inventory,
		audit:     audit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /create-product", s.handleCreateProduct)
	s.mux.HandleFunc("GET /get-products", s.handleListProducts)
	s.mux.HandleFunc("GET /get-product/{id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /products/filter", s.handleFilterProducts)
	s.mux.HandleFunc("PUT /update-product/{id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /delete-product/{id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /eventLogs", s.handleListEventLogs)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req inventoryhttp.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	resp, err := s.inventory.Handler.CreateProductHandler(r.Context(), req)
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Non-numeric or out-of-range values fall back to the defaults.
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	resp, err := s.inventory.Handler.ListProductsHandler(r.Context(), inventoryhttp.ListProductsRequest{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.inventory.Handler.GetProductHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFilterProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := inventoryhttp.FilterProductsRequest{
		Category: query.Get("category"),
	}
	if raw := query.Get("quantity"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			req.MaxQuantity = &value
		}
	}

	resp, err := s.inventory.Handler.FilterProductsHandler(r.Context(), req)
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req inventoryhttp.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	resp, err := s.inventory.Handler.UpdateProductHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	resp, err := s.inventory.Handler.DeleteProductHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeInventoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEventLogs(w http.ResponseWriter, r *http.Request) {
	resp, err := s.audit.Handler.ListEventLogsHandler(r.Context())
	if err != nil {
		s.writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeInventoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventoryerrors.ErrProductExists):
		writeError(w, http.StatusBadRequest, "Product already exists")
	case errors.Is(err, inventoryerrors.ErrNegativeQuantity):
		writeError(w, http.StatusBadRequest, "Quantity cannot be negative")
	case errors.Is(err, inventoryerrors.ErrInvalidProduct):
		writeError(w, http.StatusBadRequest, "Name, quantity and category are required")
	case errors.Is(err, inventoryerrors.ErrInvalidProductID):
		writeError(w, http.StatusBadRequest, "Invalid product id")
	case errors.Is(err, inventoryerrors.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, inventoryerrors.ErrProductHasStock):
		writeError(w, http.StatusBadRequest, "Product can not be deleted its quantity is greater than zero")
	default:
		s.writeInternalError(w, err)
	}
}

func (s *Server) writeInternalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"error", err.Error(),
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, inventoryhttp.ErrorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
