package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type memStore[T any, P record[T]] struct {
	kind  string
	items map[string]T
}

func newMemStore[T any, P record[T]](kind string) *memStore[T, P] {
	return &memStore[T, P]{kind: kind, items: make(map[string]T)}
}

func (m *memStore[T, P]) Create(_ context.Context, doc *T) error {
	m.items[P(doc).Base().ID] = *doc
	return nil
}

func (m *memStore[T, P]) FindByID(_ context.Context, id string) (*T, error) {
	doc, ok := m.items[id]
	if !ok {
		return nil, domain.NotFound(m.kind)
	}
	return &doc, nil
}

func (m *memStore[T, P]) Update(_ context.Context, id string, doc *T) error {
	if _, ok := m.items[id]; !ok {
		return domain.NotFound(m.kind)
	}
	m.items[id] = *doc
	return nil
}

func (m *memStore[T, P]) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.NotFound(m.kind)
	}
	delete(m.items, id)
	return nil
}

// all returns every record ordered by id so tests are deterministic.
func (m *memStore[T, P]) all() []T {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.items[id])
	}
	return out
}

func (m *memStore[T, P]) List(_ context.Context, q domain.ListQuery) ([]T, int64, error) {
	all := m.all()
	return paginate(all, q), int64(len(all)), nil
}

func paginate[T any](all []T, q domain.ListQuery) []T {
	skip := int(q.Skip())
	if skip > len(all) {
		return []T{}
	}
	end := skip + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end]
}

func seed[T any, P record[T]](m *memStore[T, P], docs ...T) {
	for _, d := range docs {
		m.items[P(&d).Base().ID] = d
	}
}

type stubUserRepo struct {
	*memStore[domain.User, *domain.User]
	passwords map[string]string
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{memStore: newMemStore[domain.User, *domain.User]("user"), passwords: map[string]string{}}
	seed(r.memStore, users...)
	return r
}

func (r *stubUserRepo) List(_ context.Context, f domain.UserFilter) ([]domain.User, int64, error) {
	var matched []domain.User
	for _, u := range r.all() {
		if f.RoleID != "" && u.Role.ID != f.RoleID {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		matched = append(matched, u)
	}
	return paginate(matched, f.ListQuery), int64(len(matched)), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.NotFound("user")
}

func (r *stubUserRepo) CountByRole(_ context.Context, roleID string) (int64, error) {
	var n int64
	for _, u := range r.items {
		if u.Role.ID == roleID {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) RenameRole(_ context.Context, roleID, name string) error {
	for id, u := range r.items {
		if u.Role.ID == roleID {
			u.Role.Name = name
			r.items[id] = u
		}
	}
	return nil
}

func (r *stubUserRepo) SetPassword(_ context.Context, id, hash string) error {
	u, ok := r.items[id]
	if !ok {
		return domain.NotFound("user")
	}
	u.PasswordHash = hash
	r.items[id] = u
	return nil
}

type stubRoleRepo struct {
	*memStore[domain.Role, *domain.Role]
}

func newStubRoleRepo(roles ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{memStore: newMemStore[domain.Role, *domain.Role]("role")}
	seed(r.memStore, roles...)
	return r
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.items {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, domain.NotFound("role")
}

type stubInquiryRepo struct {
	*memStore[domain.Inquiry, *domain.Inquiry]
	listCalls int
}

func newStubInquiryRepo() *stubInquiryRepo {
	return &stubInquiryRepo{memStore: newMemStore[domain.Inquiry, *domain.Inquiry]("inquiry")}
}

func (r *stubInquiryRepo) List(_ context.Context, f domain.InquiryFilter) ([]domain.Inquiry, int64, error) {
	r.listCalls++
	var matched []domain.Inquiry
	for _, inq := range r.all() {
		if f.Status != "" && inq.Status != f.Status {
			continue
		}
		matched = append(matched, inq)
	}
	return paginate(matched, f.ListQuery), int64(len(matched)), nil
}

func (r *stubInquiryRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Inquiry, error) {
	out := make([]domain.Inquiry, 0, len(ids))
	for _, id := range ids {
		if inq, ok := r.items[id]; ok {
			out = append(out, inq)
		}
	}
	return out, nil
}

type stubFollowUpRepo struct {
	*memStore[domain.FollowUp, *domain.FollowUp]
}

func newStubFollowUpRepo(items ...domain.FollowUp) *stubFollowUpRepo {
	r := &stubFollowUpRepo{memStore: newMemStore[domain.FollowUp, *domain.FollowUp]("follow-up")}
	seed(r.memStore, items...)
	return r
}

func (r *stubFollowUpRepo) List(_ context.Context, f domain.FollowUpFilter) ([]domain.FollowUp, int64, error) {
	var matched []domain.FollowUp
	for _, fu := range r.all() {
		if f.Status != "" && fu.Status != f.Status {
			continue
		}
		if f.Overdue && !fu.Overdue(f.Now) {
			continue
		}
		matched = append(matched, fu)
	}
	return paginate(matched, f.ListQuery), int64(len(matched)), nil
}

func (r *stubFollowUpRepo) DueForReminder(_ context.Context, cutoff time.Time, limit int) ([]domain.FollowUp, error) {
	var out []domain.FollowUp
	for _, fu := range r.all() {
		if fu.Status == domain.FollowUpPending && fu.ReminderSentAt == nil && fu.DueDate.Before(cutoff) {
			out = append(out, fu)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubFollowUpRepo) MarkReminded(_ context.Context, id string, at time.Time) error {
	fu, ok := r.items[id]
	if !ok {
		return domain.NotFound("follow-up")
	}
	fu.ReminderSentAt = &at
	r.items[id] = fu
	return nil
}

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.NotificationInput
}

func (n *stubNotifier) Notify(in ports.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
}

type stubMail struct {
	err  error
	sent []domain.MailMessage
}

func (m *stubMail) Send(_ context.Context, msg domain.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type otpEntry struct {
	code     string
	attempts int
}

// stubOTPStore mirrors the Redis store semantics without expiry.
type stubOTPStore struct {
	otps   map[string]*otpEntry
	tokens map[string]string
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{otps: map[string]*otpEntry{}, tokens: map[string]string{}}
}

func (s *stubOTPStore) SaveOTP(_ context.Context, email, code string, _ time.Duration) error {
	s.otps[email] = &otpEntry{code: code}
	return nil
}

func (s *stubOTPStore) VerifyOTP(_ context.Context, email, code string, maxAttempts int) error {
	e, ok := s.otps[email]
	if !ok {
		return domain.ErrOTPExpired
	}
	if e.code == code {
		delete(s.otps, email)
		return nil
	}
	e.attempts++
	if e.attempts >= maxAttempts {
		delete(s.otps, email)
		return domain.ErrOTPAttemptsExceeded
	}
	return domain.ErrInvalidOTP
}

func (s *stubOTPStore) SaveResetToken(_ context.Context, token, userID string, _ time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *stubOTPStore) ConsumeResetToken(_ context.Context, token string) (string, error) {
	id, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(s.tokens, token)
	return id, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	adminRole  = domain.Role{Meta: domain.Meta{ID: "role-admin"}, Name: domain.RoleAdmin}
	salesRole  = domain.Role{Meta: domain.Meta{ID: "role-sales"}, Name: "sales"}
	adminActor = ports.Actor{ID: "u-admin", Name: "Asha", Role: domain.RoleAdmin}
)

func fixtureUser(id, email string, active bool) domain.User {
	return domain.User{
		Meta:   domain.Meta{ID: id},
		Name:   "User " + id,
		Email:  email,
		Role:   salesRole.Ref(),
		Mobile: "9876543210",
		Active: active,
	}
}
