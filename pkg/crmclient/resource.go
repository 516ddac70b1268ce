package crmclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListParams are the query parameters shared by every list endpoint.
// Filters carries endpoint-specific parameters such as status or role_id.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	for k, val := range p.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Resource addresses one CRUD collection under /v1.
type Resource[T any] struct {
	c    *Client
	path string
}

func newResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{c: c, path: "/v1/" + name}
}

func (r *Resource[T]) List(ctx context.Context, p ListParams) (*Page[T], error) {
	var page Page[T]
	if err := r.c.authed(ctx, http.MethodGet, r.path, p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.authed(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts form and returns the stored entity.
func (r *Resource[T]) Create(ctx context.Context, form any) (*T, error) {
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out T
	if err := r.c.authed(ctx, http.MethodPost, r.path, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, form any) (*T, error) {
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out T
	if err := r.c.authed(ctx, http.MethodPut, r.itemPath(id), nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.authed(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// ToggleStatus flips a user's active flag or a follow-up's pending/completed state.
func (r *Resource[T]) ToggleStatus(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.authed(ctx, http.MethodPut, r.itemPath(id)+"/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (c *Client) Users() *Resource[User]             { return newResource[User](c, "users") }
func (c *Client) Roles() *Resource[Role]             { return newResource[Role](c, "roles") }
func (c *Client) Brands() *Resource[Brand]           { return newResource[Brand](c, "brands") }
func (c *Client) Products() *Resource[Product]       { return newResource[Product](c, "products") }
func (c *Client) Consumers() *Resource[Consumer]     { return newResource[Consumer](c, "consumers") }
func (c *Client) Consultants() *Resource[Consultant] { return newResource[Consultant](c, "consultants") }
func (c *Client) Inquiries() *Resource[Inquiry]      { return newResource[Inquiry](c, "inquiries") }
func (c *Client) FollowUps() *Resource[FollowUp]     { return newResource[FollowUp](c, "follow-ups") }
