package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/api/middleware"
	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// newTestContext builds an echo context with the production validator.
// A non-empty body is sent as JSON.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// signIn sets the claims the Auth middleware would have injected.
func signIn(c echo.Context, id, name, role string) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxName, name)
	c.Set(middleware.CtxRole, role)
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

// --- AuthService ---

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	requestFn  func(ctx context.Context, email string) error
	verifyFn   func(ctx context.Context, email, otp string) (string, error)
	resetFn    func(ctx context.Context, token, password string) error
	changePwFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return s.verifyFn(ctx, email, otp)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetFn(ctx, token, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePwFn(ctx, userID, current, next)
}

// --- UserService ---

type stubUserService struct {
	ports.UserService
	listFn   func(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	toggleFn func(ctx context.Context, actor ports.Actor, id string) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error) {
	return s.listFn(ctx, f)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ToggleActive(ctx context.Context, actor ports.Actor, id string) (*domain.User, error) {
	return s.toggleFn(ctx, actor, id)
}

// --- RoleService ---

type stubRoleService struct {
	ports.RoleService
	renamedID, renamedTo string
	deleteErr            error
}

func (s *stubRoleService) Rename(_ context.Context, id, name string) (*domain.Role, error) {
	s.renamedID, s.renamedTo = id, name
	return &domain.Role{Meta: domain.Meta{ID: id}, Name: name}, nil
}

func (s *stubRoleService) Delete(context.Context, string) error {
	return s.deleteErr
}

// --- FollowUpService ---

type stubFollowUpService struct {
	ports.FollowUpService
	listFilter domain.FollowUpFilter
	listCalled bool
}

func (s *stubFollowUpService) List(_ context.Context, f domain.FollowUpFilter) (domain.Page[domain.FollowUp], error) {
	s.listCalled = true
	s.listFilter = f
	return domain.NewPage[domain.FollowUp](nil, 0, f.ListQuery.Normalize()), nil
}

// --- AnalyticsService ---

type stubAnalyticsService struct {
	summary *domain.AnalyticsSummary
	err     error
}

func (s stubAnalyticsService) Summary(context.Context) (*domain.AnalyticsSummary, error) {
	return s.summary, s.err
}

// --- InquiryService ---

type stubInquiryService struct {
	ports.InquiryService
	listFn    func(ctx context.Context, f domain.InquiryFilter) (domain.Page[domain.Inquiry], error)
	commentFn func(ctx context.Context, actor ports.Actor, id, text string) (*domain.Comment, error)
	assignFn  func(ctx context.Context, actor ports.Actor, id string, in ports.AssignFollowUpInput) (*domain.Inquiry, *domain.FollowUp, error)
}

func (s *stubInquiryService) List(ctx context.Context, f domain.InquiryFilter) (domain.Page[domain.Inquiry], error) {
	return s.listFn(ctx, f)
}

func (s *stubInquiryService) AddComment(ctx context.Context, actor ports.Actor, id, text string) (*domain.Comment, error) {
	return s.commentFn(ctx, actor, id, text)
}

func (s *stubInquiryService) AssignFollowUp(ctx context.Context, actor ports.Actor, id string, in ports.AssignFollowUpInput) (*domain.Inquiry, *domain.FollowUp, error) {
	return s.assignFn(ctx, actor, id, in)
}

// --- CatalogService ---

type stubCatalogService[T any] struct {
	ports.CatalogService[T]
	created *T
}

func (s *stubCatalogService[T]) Create(_ context.Context, doc *T) (*T, error) {
	s.created = doc
	return doc, nil
}

// --- NotificationService ---

type stubNotificationService struct {
	ports.NotificationService
	markedUser, markedID string
	listFilter           domain.NotificationFilter
}

func (s *stubNotificationService) MarkRead(_ context.Context, userID, id string) error {
	if id == "missing" {
		return domain.NotFound("notification")
	}
	s.markedUser, s.markedID = userID, id
	return nil
}

func (s *stubNotificationService) List(_ context.Context, f domain.NotificationFilter) (domain.Page[domain.Notification], error) {
	s.listFilter = f
	return domain.NewPage[domain.Notification](nil, 0, f.ListQuery.Normalize()), nil
}
