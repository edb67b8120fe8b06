package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainerrors "stockroom/contexts/inventory-ops/inventory-service/domain/errors"
	"stockroom/contexts/inventory-ops/inventory-service/ports"
)

// Repository persists products in a MongoDB collection. Product identifiers
// are ObjectId hex strings; a malformed hex id is rejected before any query.
type Repository struct {
	products *mongo.Collection
	logger   *slog.Logger
}

func NewRepository(database *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		products: database.Collection("products"),
		logger:   logger,
	}
}

// EnsureIndexes creates the unique name index that backs the conflict
// guarantee under concurrent creates.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *Repository) CreateProduct(ctx context.Context, input ports.CreateProductInput) (ports.Product, error) {
	err := r.products.FindOne(ctx, bson.M{"name": input.Name}).Err()
	if err == nil {
		return ports.Product{}, domainerrors.ErrProductExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return ports.Product{}, err
	}

	doc := productDocument{
		ID:       primitive.NewObjectID(),
		Name:     input.Name,
		Quantity: input.Quantity,
		Category: input.Category,
	}
	if _, err := r.products.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ports.Product{}, domainerrors.ErrProductExists
		}
		return ports.Product{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return ports.Product{}, err
	}

	var doc productDocument
	if err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListProducts(ctx context.Context, page int, limit int) ([]ports.Product, int, error) {
	total, err := r.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.products.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page-1)*limit)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	items := make([]ports.Product, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, int(total), nil
}

func (r *Repository) FilterProducts(ctx context.Context, filter ports.ProductFilter) ([]ports.Product, error) {
	query := bson.M{}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(category), Options: "i"}
	}
	if filter.MaxQuantity != nil {
		query["quantity"] = bson.M{"$lt": *filter.MaxQuantity}
	}

	cursor, err := r.products.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]ports.Product, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, productID string, quantity int) (ports.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return ports.Product{}, err
	}

	var doc productDocument
	err = r.products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"quantity": quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID string) (ports.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return ports.Product{}, err
	}

	var doc productDocument
	if err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ports.Product{}, domainerrors.ErrProductNotFound
		}
		return ports.Product{}, err
	}
	if doc.Quantity > 0 {
		return ports.Product{}, domainerrors.ErrProductHasStock
	}

	if _, err := r.products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return ports.Product{}, err
	}
	return doc.toEntity(), nil
}

type productDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Quantity int                `bson:"quantity"`
	Category string             `bson:"category"`
}

func (d productDocument) toEntity() ports.Product {
	return ports.Product{
		ProductID: d.ID.Hex(),
		Name:      d.Name,
		Quantity:  d.Quantity,
		Category:  d.Category,
	}
}

func parseID(productID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrInvalidProductID
	}
	return id, nil
}

var _ ports.Repository = (*Repository)(nil)
