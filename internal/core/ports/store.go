package ports

import (
	"context"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// Store is the persistence contract shared by every record collection.
type Store[T any] interface {
	Create(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	// Update replaces the stored document with the given id.
	Update(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

func (a Actor) Ref() domain.Ref { return domain.Ref{ID: a.ID, Name: a.Name} }

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }
