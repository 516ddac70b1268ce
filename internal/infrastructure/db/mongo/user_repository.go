package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	*collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	c := newCollection[domain.User](db, collectionUsers, "user", "name", "email", "designation", "mobile")
	c.unique = "user email"
	return &UserRepository{c}
}

func (r *UserRepository) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int64, error) {
	filter := bson.M{}
	if f.RoleID != "" {
		filter["role.id"] = f.RoleID
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}
	return r.find(ctx, filter, f.ListQuery)
}

// FindByEmail expects an already normalised (lower-case) address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"role.id": roleID})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

func (r *UserRepository) RenameRole(ctx context.Context, roleID, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"role.id": roleID},
		bson.M{"$set": bson.M{"role.name": name}},
	)
	if err != nil {
		return fmt.Errorf("rename role on users: %w", err)
	}
	return nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("user")
	}
	return nil
}

// RoleRepository implements ports.RoleRepository.
type RoleRepository struct {
	*collection[domain.Role]
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	c := newCollection[domain.Role](db, collectionRoles, "role", "name")
	c.unique = "role name"
	c.sort = bson.D{{Key: "name", Value: 1}}
	return &RoleRepository{c}
}

func (r *RoleRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Role, int64, error) {
	return r.find(ctx, bson.M{}, q)
}

// FindByName matches the whole name ignoring case.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", Options: "i"}
	return r.findOne(ctx, bson.M{"name": pattern})
}
