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

type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, log: log}
}

func (s *UserService) List(ctx context.Context, filter domain.UserFilter) (domain.Page[domain.User], error) {
	filter.ListQuery = filter.Normalize()
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return domain.NewPage(items, total, filter.ListQuery), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create adds an active user with a hashed password. The email must be unused
// and the role must exist.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("user email")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, resolveRef(err, "role_id")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role.Ref(),
		Designation:  strings.TrimSpace(in.Designation),
		Mobile:       strings.TrimSpace(in.Mobile),
		Active:       true,
	}
	stampNew(&user.Meta, utcNow())

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role.Name).Msg("user created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.RoleID != "" && in.RoleID != user.Role.ID {
		role, err := s.roles.FindByID(ctx, in.RoleID)
		if err != nil {
			return nil, resolveRef(err, "role_id")
		}
		user.Role = role.Ref()
	}
	user.Name = strings.TrimSpace(in.Name)
	user.Designation = strings.TrimSpace(in.Designation)
	user.Mobile = strings.TrimSpace(in.Mobile)
	user.UpdatedAt = utcNow()

	if err := s.users.Update(ctx, id, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if actor.ID == id {
		return domain.Invalid("you cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("by", actor.ID).Msg("user deleted")
	return nil
}

// ToggleActive flips the active flag. Deactivated users can no longer sign in.
func (s *UserService) ToggleActive(ctx context.Context, actor ports.Actor, id string) (*domain.User, error) {
	if actor.ID == id {
		return nil, domain.Invalid("you cannot deactivate your own account")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = !user.Active
	user.UpdatedAt = utcNow()

	if err := s.users.Update(ctx, id, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Bool("active", user.Active).Msg("user status changed")
	return user, nil
}

// EnsureAdmin bootstraps an empty deployment: it creates the built-in admin
// role when missing and an admin account for in.Email unless one exists.
// The boolean reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, in ports.CreateUserInput) (*domain.User, bool, error) {
	role, err := s.roles.FindByName(ctx, domain.RoleAdmin)
	if errors.Is(err, domain.ErrNotFound) {
		role = &domain.Role{Name: domain.RoleAdmin}
		stampNew(&role.Meta, utcNow())
		if err := s.roles.Create(ctx, role); err != nil {
			return nil, false, fmt.Errorf("create admin role: %w", err)
		}
		s.log.Info().Str("role_id", role.ID).Msg("admin role created")
	} else if err != nil {
		return nil, false, fmt.Errorf("find admin role: %w", err)
	}

	if existing, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email)); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("find admin user: %w", err)
	}

	in.RoleID = role.ID
	user, err := s.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
