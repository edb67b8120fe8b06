package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&productModel{})
}

func (r *Repository) CreateProduct(ctx context.Context, input ports.CreateProductInput) (ports.Product, error) {
	var existing productModel
	err := r.db.WithContext(ctx).
		Where("name = ?", input.Name).
		First(&existing).
		Error
	if err == nil {
		return ports.Product{}, domainerrors.ErrProductExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Product{}, err
	}

	row := productModel{
		ProductID: uuid.NewString(),
		Name:      input.Name,
		Quantity:  input.Quantity,
		Category:  input.Category,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// The unique index closes the race between the existence check and
		// the insert: a concurrent writer still gets the conflict.
		if isUniqueViolation(err) {
			return ports.Product{}, domainerrors.ErrProductExists
		}
		return ports.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListProducts(ctx context.Context, page int, limit int) ([]ports.Product, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&productModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []productModel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]ports.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) FilterProducts(ctx context.Context, filter ports.ProductFilter) ([]ports.Product, error) {
	tx := r.db.WithContext(ctx).Model(&productModel{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		tx = tx.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	if filter.MaxQuantity != nil {
		tx = tx.Where("quantity < ?", *filter.MaxQuantity)
	}

	var rows []productModel
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, productID string, quantity int) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}

	row.Quantity = quantity
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return ports.Product{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID string) (ports.Product, error) {
	if err := validateID(productID); err != nil {
		return ports.Product{}, err
	}

	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}
	if row.Quantity > 0 {
		return ports.Product{}, domainerrors.ErrProductHasStock
	}

	if err := r.db.WithContext(ctx).Delete(&productModel{}, "product_id = ?", productID).Error; err != nil {
		return ports.Product{}, err
	}
	return row.toEntity(), nil
}

type productModel struct {
	ProductID string `gorm:"column:product_id;primaryKey"`
	Name      string `gorm:"column:name;uniqueIndex"`
	Quantity  int    `gorm:"column:quantity"`
	Category  string `gorm:"column:category"`
}

func (productModel) TableName() string {
	return "products"
}

func (m productModel) toEntity() ports.Product {
	return ports.Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Category:  m.Category,
	}
}

func validateID(productID string) error {
	if _, err := uuid.Parse(productID); err != nil {
		return domainerrors.ErrInvalidProductID
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
