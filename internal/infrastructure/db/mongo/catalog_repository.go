package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// CatalogRepository implements ports.CatalogRepository for one reference-data collection.
type CatalogRepository[T any] struct {
	*collection[T]
}

func (r *CatalogRepository[T]) List(ctx context.Context, q domain.ListQuery) ([]T, int64, error) {
	return r.find(ctx, bson.M{}, q)
}

func NewBrandRepository(db *mongo.Database) *CatalogRepository[domain.Brand] {
	return &CatalogRepository[domain.Brand]{
		newCollection[domain.Brand](db, collectionBrands, "brand", "name", "contact_person", "email", "phone"),
	}
}

func NewProductRepository(db *mongo.Database) *CatalogRepository[domain.Product] {
	return &CatalogRepository[domain.Product]{
		newCollection[domain.Product](db, collectionProducts, "product", "name", "brand.name", "category", "model_number"),
	}
}

func NewConsumerRepository(db *mongo.Database) *CatalogRepository[domain.Consumer] {
	return &CatalogRepository[domain.Consumer]{
		newCollection[domain.Consumer](db, collectionConsumers, "consumer", "name", "company", "contact_person", "email", "phone", "city"),
	}
}

func NewConsultantRepository(db *mongo.Database) *CatalogRepository[domain.Consultant] {
	return &CatalogRepository[domain.Consultant]{
		newCollection[domain.Consultant](db, collectionConsultants, "consultant", "name", "firm", "email", "phone"),
	}
}
