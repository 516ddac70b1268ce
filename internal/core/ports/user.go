package ports

import (
	"context"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

type UserRepository interface {
	Store[domain.User]
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	CountByRole(ctx context.Context, roleID string) (int64, error)
	// RenameRole rewrites the role name snapshot on every user holding roleID.
	RenameRole(ctx context.Context, roleID, name string) error
	SetPassword(ctx context.Context, id, hash string) error
}

type RoleRepository interface {
	Store[domain.Role]
	List(ctx context.Context, q domain.ListQuery) ([]domain.Role, int64, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
}

// CreateUserInput carries the fields of the user creation form.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	RoleID      string
	Designation string
	Mobile      string
}

// UpdateUserInput carries the editable profile fields.
type UpdateUserInput struct {
	Name        string
	RoleID      string
	Designation string
	Mobile      string
}

type UserService interface {
	List(ctx context.Context, filter domain.UserFilter) (domain.Page[domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
	ToggleActive(ctx context.Context, actor Actor, id string) (*domain.User, error)
}

type RoleService interface {
	List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Role], error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, name string) (*domain.Role, error)
	Rename(ctx context.Context, id, name string) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}
