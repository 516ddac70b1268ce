package domain

import (
	"math"
	"time"
)

// Meta holds the identity and audit timestamps shared by every stored record.
type Meta struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Base exposes the embedded Meta so generic code can stamp any record.
func (m *Meta) Base() *Meta { return m }

// Ref is a denormalised pointer to another record: its id plus the display
// name at the time the reference was written.
type Ref struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

func (r Ref) IsZero() bool { return r.ID == "" }

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (Page-1)*Limit within an int32 offset.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// ListQuery carries the search and pagination parameters every list view sends.
type ListQuery struct {
	Page   int    // 1-based, at most MaxPage
	Limit  int    // capped at MaxPageLimit
	Search string // case-insensitive substring
}

// Normalize applies defaults and bounds.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Skip is the number of rows before the requested page.
func (q ListQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// Page is one slice of a list result plus the numbers the pagination controls need.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage builds a Page from a normalised query.
func NewPage[T any](items []T, total int64, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if q.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }

func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
