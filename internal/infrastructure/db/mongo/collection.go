package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

// collection implements the shared CRUD and paged listing over documents
// keyed by a string _id.
type collection[T any] struct {
	col          *mongo.Collection
	kind         string   // used in not-found errors, e.g. "inquiry"
	unique       string   // used in conflict errors, e.g. "user email"
	searchFields []string // fields matched by ListQuery.Search
	sort         bson.D
}

func newCollection[T any](db *mongo.Database, name, kind string, searchFields ...string) *collection[T] {
	return &collection[T]{
		col:          db.Collection(name),
		kind:         kind,
		unique:       kind,
		searchFields: searchFields,
		sort:         bson.D{{Key: "created_at", Value: -1}},
	}
}

func (c *collection[T]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict(c.unique)
		}
		return fmt.Errorf("insert %s: %w", c.kind, err)
	}
	return nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c *collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(c.kind)
		}
		return nil, fmt.Errorf("find %s: %w", c.kind, err)
	}
	return &doc, nil
}

func (c *collection[T]) Update(ctx context.Context, id string, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict(c.unique)
		}
		return fmt.Errorf("update %s: %w", c.kind, err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(c.kind)
	}
	return nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	return c.deleteOne(ctx, bson.M{"_id": id})
}

func (c *collection[T]) deleteOne(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(c.kind)
	}
	return nil
}

// find returns one page of documents matching filter plus the search term,
// and the total number of matches.
func (c *collection[T]) find(ctx context.Context, filter bson.M, q domain.ListQuery) ([]T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	if or := searchFilter(c.searchFields, q.Search); or != nil {
		filter["$or"] = or
	}

	total, err := c.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", c.kind, err)
	}

	opts := options.Find().
		SetSort(c.sort).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", c.kind, err)
	}
	items := make([]T, 0, q.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", c.kind, err)
	}
	return items, total, nil
}

// searchFilter builds a case-insensitive substring match over fields.
func searchFilter(fields []string, term string) bson.A {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}
