package ports

import (
	"context"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// CatalogRepository persists a reference-data collection (brands, products,
// consumers, consultants).
type CatalogRepository[T any] interface {
	Store[T]
	List(ctx context.Context, q domain.ListQuery) ([]T, int64, error)
}

// CatalogService is the CRUD contract of a reference-data page.
type CatalogService[T any] interface {
	List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	Update(ctx context.Context, id string, doc *T) (*T, error)
	Delete(ctx context.Context, id string) error
}
