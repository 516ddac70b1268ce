package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// record is satisfied by a pointer to any domain type embedding domain.Meta.
type record[T any] interface {
	*T
	Base() *domain.Meta
}

// CatalogService implements ports.CatalogService for one reference-data collection.
type CatalogService[T any, P record[T]] struct {
	kind    string
	repo    ports.CatalogRepository[T]
	prepare func(ctx context.Context, doc P) error
	log     zerolog.Logger
	now     func() time.Time
}

func newCatalogService[T any, P record[T]](kind string, repo ports.CatalogRepository[T], log zerolog.Logger) *CatalogService[T, P] {
	return &CatalogService[T, P]{
		kind: kind,
		repo: repo,
		log:  log.With().Str("catalog", kind).Logger(),
		now:  utcNow,
	}
}

func NewBrandService(repo ports.CatalogRepository[domain.Brand], log zerolog.Logger) *CatalogService[domain.Brand, *domain.Brand] {
	return newCatalogService[domain.Brand, *domain.Brand]("brand", repo, log)
}

func NewConsumerService(repo ports.CatalogRepository[domain.Consumer], log zerolog.Logger) *CatalogService[domain.Consumer, *domain.Consumer] {
	return newCatalogService[domain.Consumer, *domain.Consumer]("consumer", repo, log)
}

func NewConsultantService(repo ports.CatalogRepository[domain.Consultant], log zerolog.Logger) *CatalogService[domain.Consultant, *domain.Consultant] {
	return newCatalogService[domain.Consultant, *domain.Consultant]("consultant", repo, log)
}

// NewProductService resolves each product's brand and snapshots its name.
func NewProductService(repo ports.CatalogRepository[domain.Product], brands ports.CatalogRepository[domain.Brand], log zerolog.Logger) *CatalogService[domain.Product, *domain.Product] {
	s := newCatalogService[domain.Product, *domain.Product]("product", repo, log)
	s.prepare = func(ctx context.Context, p *domain.Product) error {
		brand, err := brands.FindByID(ctx, p.Brand.ID)
		if err != nil {
			return resolveRef(err, "brand_id")
		}
		p.Brand = brand.Ref()
		return nil
	}
	return s
}

func (s *CatalogService[T, P]) List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error) {
	q = q.Normalize()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return domain.NewPage(items, total, q), nil
}

func (s *CatalogService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if s.prepare != nil {
		if err := s.prepare(ctx, P(doc)); err != nil {
			return nil, err
		}
	}
	meta := P(doc).Base()
	stampNew(meta, s.now())

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Info().Str("id", meta.ID).Msg("record created")
	return doc, nil
}

// Update replaces the editable fields, keeping id and created_at.
func (s *CatalogService[T, P]) Update(ctx context.Context, id string, doc *T) (*T, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.prepare != nil {
		if err := s.prepare(ctx, P(doc)); err != nil {
			return nil, err
		}
	}
	meta := P(doc).Base()
	meta.ID = id
	meta.CreatedAt = P(existing).Base().CreatedAt
	meta.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, id, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *CatalogService[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("record deleted")
	return nil
}
