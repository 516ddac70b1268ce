package api

import (
	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/api/handler"
	"github.com/indocrm/inquiry-desk/internal/api/middleware"
)

// Handlers bundles every route handler the API mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Roles         *handler.RoleHandler
	Brands        crudHandler
	Products      crudHandler
	Consumers     crudHandler
	Consultants   crudHandler
	Inquiries     *handler.InquiryHandler
	FollowUps     *handler.FollowUpHandler
	Notifications *handler.NotificationHandler
	Analytics     *handler.AnalyticsHandler
}

// crudHandler is the route set shared by list/detail pages.
type crudHandler interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func mountCRUD(g *echo.Group, path string, h crudHandler, m ...echo.MiddlewareFunc) {
	g.GET(path, h.List, m...)
	g.POST(path, h.Create, m...)
	g.GET(path+"/:id", h.Get, m...)
	g.PUT(path+"/:id", h.Update, m...)
	g.DELETE(path+"/:id", h.Delete, m...)
}

// RegisterRoutes mounts the public auth routes and the authenticated /v1 API.
// Users and roles are restricted to the admin role. users resolves token
// subjects on every /v1 request.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, users middleware.SubjectStore) {
	// --- Auth routes (public) ---
	auth := e.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret, users))
	v1.GET("/me", h.Auth.Me)
	v1.PUT("/me/password", h.Auth.ChangePassword)

	adminOnly := middleware.AdminOnly()
	mountCRUD(v1, "/users", h.Users, adminOnly)
	v1.PUT("/users/:id/status", h.Users.ToggleStatus, adminOnly)
	mountCRUD(v1, "/roles", h.Roles, adminOnly)

	mountCRUD(v1, "/brands", h.Brands)
	mountCRUD(v1, "/products", h.Products)
	mountCRUD(v1, "/consumers", h.Consumers)
	mountCRUD(v1, "/consultants", h.Consultants)

	mountCRUD(v1, "/inquiries", h.Inquiries)
	v1.PUT("/inquiries/:id/status", h.Inquiries.UpdateStatus)
	v1.POST("/inquiries/:id/comments", h.Inquiries.AddComment)
	v1.POST("/inquiries/:id/follow-up", h.Inquiries.AssignFollowUp)

	mountCRUD(v1, "/follow-ups", h.FollowUps)
	v1.PUT("/follow-ups/:id/status", h.FollowUps.ToggleStatus)

	v1.GET("/notifications", h.Notifications.List)
	v1.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	v1.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
	v1.PUT("/notifications/:id/read", h.Notifications.MarkRead)
	v1.DELETE("/notifications/:id", h.Notifications.Delete)

	v1.GET("/analytics/summary", h.Analytics.Summary)
}
