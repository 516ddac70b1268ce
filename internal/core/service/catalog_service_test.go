package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

func TestCatalogService_CreateUpdateDelete(t *testing.T) {
	repo := newMemStore[domain.Brand, *domain.Brand]("brand")
	svc := NewBrandService(repo, discardLogger)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.Brand{Name: "Kirloskar", Email: "info@kirloskar.example", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps")
	}

	later := created.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }
	updated, err := svc.Update(ctx, created.ID, &domain.Brand{Name: "Kirloskar Brothers"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must keep identity and created_at")
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected updated_at %v, got %v", later, updated.UpdatedAt)
	}
	if repo.items[created.ID].Name != "Kirloskar Brothers" {
		t.Fatalf("update not persisted")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCatalogService_Update_Missing(t *testing.T) {
	svc := NewConsumerService(newMemStore[domain.Consumer, *domain.Consumer]("consumer"), discardLogger)

	if _, err := svc.Update(context.Background(), "missing", &domain.Consumer{Name: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductService_ResolvesBrand(t *testing.T) {
	brands := newMemStore[domain.Brand, *domain.Brand]("brand")
	seed(brands, domain.Brand{Meta: domain.Meta{ID: "b-1"}, Name: "Grundfos"})
	svc := NewProductService(newMemStore[domain.Product, *domain.Product]("product"), brands, discardLogger)

	p, err := svc.Create(context.Background(), &domain.Product{Name: "CR 32", Brand: domain.Ref{ID: "b-1"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Brand.Name != "Grundfos" {
		t.Fatalf("expected brand name snapshot, got %+v", p.Brand)
	}

	_, err = svc.Create(context.Background(), &domain.Product{Name: "Ghost", Brand: domain.Ref{ID: "b-404"}})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestCatalogService_List_NormalisesQuery(t *testing.T) {
	repo := newMemStore[domain.Consultant, *domain.Consultant]("consultant")
	for _, id := range []string{"c-1", "c-2", "c-3"} {
		seed(repo, domain.Consultant{Meta: domain.Meta{ID: id}, Name: id})
	}
	svc := NewConsultantService(repo, discardLogger)

	page, err := svc.List(context.Background(), domain.ListQuery{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != domain.DefaultPageLimit {
		t.Fatalf("expected defaults, got page=%d limit=%d", page.Page, page.Limit)
	}
	if len(page.Items) != 3 || page.HasNext() || page.HasPrev() {
		t.Fatalf("unexpected page: %+v", page)
	}
}
