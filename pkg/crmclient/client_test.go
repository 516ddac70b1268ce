package crmclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeAPI serves a handful of endpoints with canned responses and records
// the last Authorization header it saw.
type fakeAPI struct {
	lastAuth  string
	lastQuery string
	lastBody  map[string]any
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct-horse" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": "u1", "name": "Asha", "email": body["email"], "role": map[string]string{"id": "r1", "name": "admin"}, "active": true},
		})
	})
	mux.HandleFunc("GET /v1/brands", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		f.lastQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{
			"data":       []map[string]any{{"id": "b1", "name": "Acme"}},
			"pagination": map[string]any{"total": 11, "page": 2, "limit": 10, "total_pages": 2, "has_prev": true, "has_next": false},
		})
	})
	mux.HandleFunc("POST /v1/brands", func(w http.ResponseWriter, r *http.Request) {
		f.lastBody = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)
		writeJSON(w, http.StatusCreated, map[string]any{"id": "b2", "name": f.lastBody["name"]})
	})
	mux.HandleFunc("PUT /v1/users/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "active": false})
	})
	mux.HandleFunc("DELETE /v1/roles/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "r-admin" {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "built-in role cannot be changed"})
			return
		}
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	})
	mux.HandleFunc("POST /auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "user account is inactive"})
	})
	mux.HandleFunc("GET /v1/inquiries/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "inquiry not found"})
	})
	mux.HandleFunc("POST /v1/inquiries/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, map[string]any{"text": body["text"], "author": map[string]string{"id": "u1", "name": "Asha"}})
	})
	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func signedIn(t *testing.T, f *fakeAPI) *Client {
	t.Helper()
	c := New(f.server(t).URL)
	if _, err := c.Login(context.Background(), "asha@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return c
}

func TestLogin_StoresToken(t *testing.T) {
	c := signedIn(t, &fakeAPI{})

	if c.Token() != "tok-1" {
		t.Errorf("token = %q, want tok-1", c.Token())
	}
	if u := c.CurrentUser(); u == nil || u.Role.Name != "admin" {
		t.Errorf("current user = %+v, want admin", u)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	f := &fakeAPI{}
	c := New(f.server(t).URL)

	_, err := c.Login(context.Background(), "asha@example.com", "wrong")
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "invalid email or password" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if c.Token() != "" {
		t.Error("token must stay empty")
	}
}

func TestLogin_ValidatesEmailLocally(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.Login(context.Background(), "not-an-email", "x")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email", verr.Fields)
	}
}

func TestResource_ListSendsTokenAndParams(t *testing.T) {
	f := &fakeAPI{}
	c := signedIn(t, f)

	page, err := c.Brands().List(context.Background(), ListParams{Page: 2, Limit: 10, Search: "ac"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.lastAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q", f.lastAuth)
	}
	if f.lastQuery != "limit=10&page=2&search=ac" {
		t.Errorf("query = %q", f.lastQuery)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Acme" {
		t.Errorf("data = %+v", page.Data)
	}
	if !page.Pagination.HasPrev || page.Pagination.HasNext {
		t.Errorf("pagination = %+v, want prev only", page.Pagination)
	}
}

func TestResource_CreateValidatesForm(t *testing.T) {
	f := &fakeAPI{}
	c := signedIn(t, f)

	_, err := c.Brands().Create(context.Background(), BrandForm{Name: "Acme", Email: "sales@acme.test", Phone: "12345"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["phone"] != "must be exactly 10 digits" {
		t.Errorf("fields = %v", verr.Fields)
	}
	if f.lastBody != nil {
		t.Error("invalid form must not reach the server")
	}

	b, err := c.Brands().Create(context.Background(), BrandForm{Name: "Acme", Email: "sales@acme.test", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID != "b2" || f.lastBody["phone"] != "9876543210" {
		t.Errorf("created %+v, body %v", b, f.lastBody)
	}
}

func TestResource_ToggleStatus(t *testing.T) {
	c := signedIn(t, &fakeAPI{})

	u, err := c.Users().ToggleStatus(context.Background(), "u7")
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if u.ID != "u7" || u.Active {
		t.Errorf("user = %+v", u)
	}
}

func TestAuthFailureClearsToken(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{"401 on me", func(c *Client) error { _, err := c.Me(context.Background()); return err }},
		{"403 on delete", func(c *Client) error { return c.Roles().Delete(context.Background(), "r1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := signedIn(t, &fakeAPI{})

			err := tt.call(c)
			if !IsAuthError(err) {
				t.Fatalf("expected auth error, got %v", err)
			}
			if c.Token() != "" || c.CurrentUser() != nil {
				t.Error("session must be cleared")
			}

			// Later calls fail fast without a round trip.
			if _, err := c.Brands().List(context.Background(), ListParams{}); !errors.Is(err, ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	}
}

func TestNotFoundKeepsToken(t *testing.T) {
	c := signedIn(t, &fakeAPI{})

	_, err := c.Inquiries().Get(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if c.Token() == "" {
		t.Error("404 must not sign the client out")
	}
}

func TestAddComment(t *testing.T) {
	c := signedIn(t, &fakeAPI{})

	cm, err := c.AddComment(context.Background(), "i1", "called the buyer")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if cm.Text != "called the buyer" || cm.Author.Name != "Asha" {
		t.Errorf("comment = %+v", cm)
	}

	if _, err := c.AddComment(context.Background(), "i1", ""); err == nil {
		t.Error("empty comment should fail validation")
	}
}

func TestBusinessRuleRejectionKeepsToken(t *testing.T) {
	c := signedIn(t, &fakeAPI{})

	err := c.Roles().Delete(context.Background(), "r-admin")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
	if IsAuthError(err) {
		t.Error("a protected role rejection is not an auth error")
	}
	if c.Token() != "tok-1" {
		t.Error("409 must not sign the client out")
	}
}

func TestPublicAuthCallsDoNotTouchSession(t *testing.T) {
	f := &fakeAPI{}
	c := signedIn(t, f)

	// A signed-in admin resetting an inactive colleague's password.
	err := c.PasswordReset().SubmitEmail(context.Background(), "inactive@example.com")
	if !IsAuthError(err) {
		t.Fatalf("expected 403, got %v", err)
	}
	if f.lastAuth != "" {
		t.Errorf("public call sent Authorization %q", f.lastAuth)
	}
	if c.Token() != "tok-1" {
		t.Error("rejection of an unauthenticated call must not clear the session")
	}
}
