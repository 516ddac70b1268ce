package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

type RoleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, log: log}
}

func (s *RoleService) List(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Role], error) {
	q = q.Normalize()
	items, total, err := s.roles.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Role]{}, fmt.Errorf("list roles: %w", err)
	}
	return domain.NewPage(items, total, q), nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	role := &domain.Role{Name: name}
	stampNew(&role.Meta, utcNow())
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	s.log.Info().Str("role_id", role.ID).Str("name", name).Msg("role created")
	return role, nil
}

// Rename changes a role's name and rewrites the name held by its users.
func (s *RoleService) Rename(ctx context.Context, id, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.BuiltIn() {
		return nil, domain.ErrProtectedRole
	}
	if role.Name == name {
		return role, nil
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	role.Name = name
	role.UpdatedAt = utcNow()
	if err := s.roles.Update(ctx, id, role); err != nil {
		return nil, err
	}
	if err := s.users.RenameRole(ctx, id, name); err != nil {
		return nil, fmt.Errorf("rename role on users: %w", err)
	}
	return role, nil
}

// Delete removes a role that no user holds. The admin role is never deleted.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role.BuiltIn() {
		return domain.ErrProtectedRole
	}

	n, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w (%d users)", domain.ErrRoleInUse, n)
	}

	return s.roles.Delete(ctx, id)
}

func (s *RoleService) ensureNameFree(ctx context.Context, name, selfID string) error {
	if strings.EqualFold(name, domain.RoleAdmin) {
		return domain.Conflict("role name")
	}
	existing, err := s.roles.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return domain.Conflict("role name")
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return nil
}
