package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// InquiryHandler handles HTTP requests for inquiry operations.
type InquiryHandler struct {
	service ports.InquiryService
}

func NewInquiryHandler(service ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

// --- Request / Response types ---

type inquiryRequest struct {
	Project      string `json:"project"       validate:"required,max=200"`
	ConsumerID   string `json:"consumer_id"   validate:"required"`
	ProductID    string `json:"product_id"    validate:"required"`
	ConsultantID string `json:"consultant_id"`
	Quantity     int    `json:"quantity"      validate:"required,gt=0"`
	Status       string `json:"status"`
	Description  string `json:"description"   validate:"max=2000"`
}

func (r inquiryRequest) toInput() ports.InquiryInput {
	return ports.InquiryInput{
		Project:      r.Project,
		ConsumerID:   r.ConsumerID,
		ProductID:    r.ProductID,
		ConsultantID: r.ConsultantID,
		Quantity:     r.Quantity,
		Status:       r.Status,
		Description:  r.Description,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type assignFollowUpRequest struct {
	AssignedTo  string     `json:"assigned_to" validate:"required"`
	DueDate     *time.Time `json:"due_date"    validate:"required"`
	Description string     `json:"description" validate:"max=2000"`
}

type assignFollowUpResponse struct {
	Inquiry  *domain.Inquiry  `json:"inquiry"`
	FollowUp *domain.FollowUp `json:"follow_up"`
}

// List handles GET /v1/inquiries.
//
// @Summary      List inquiries
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Param        search       query     string  false  "Project, consumer, product or consultant"
// @Param        status       query     string  false  "tender, purchase, procurement or urgent"
// @Param        assigned_to  query     string  false  "Assignee user id"
// @Success      200          {object}  listResponse[domain.Inquiry]
// @Failure      400          {object}  errorResponse
// @Router       /v1/inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return err
	}
	filter := domain.InquiryFilter{ListQuery: q, AssignedTo: c.QueryParam("assigned_to")}
	if raw := c.QueryParam("status"); raw != "" {
		if filter.Status, err = domain.ParseInquiryStatus(raw); err != nil {
			return err
		}
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

// Get handles GET /v1/inquiries/:id.
//
// @Summary      Get an inquiry with its description history
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Inquiry id"
// @Success      200  {object}  domain.Inquiry
// @Failure      404  {object}  errorResponse
// @Router       /v1/inquiries/{id} [get]
func (h *InquiryHandler) Get(c echo.Context) error {
	inq, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

// Create handles POST /v1/inquiries.
//
// @Summary      Create an inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      inquiryRequest  true  "Inquiry"
// @Success      201   {object}  domain.Inquiry
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/inquiries [post]
func (h *InquiryHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req inquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inq, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inq)
}

func (h *InquiryHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req inquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inq, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

func (h *InquiryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus handles PUT /v1/inquiries/:id/status.
//
// @Summary      Change an inquiry's status
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Inquiry id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Inquiry
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/inquiries/{id}/status [put]
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inq, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

// AddComment handles POST /v1/inquiries/:id/comments.
//
// @Summary      Append to an inquiry's description history
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Inquiry id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/inquiries/{id}/comments [post]
func (h *InquiryHandler) AddComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.AddComment(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// AssignFollowUp handles POST /v1/inquiries/:id/follow-up.
//
// @Summary      Assign an inquiry and schedule its follow-up
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Inquiry id"
// @Param        body  body      assignFollowUpRequest  true  "Assignee and due date"
// @Success      201   {object}  assignFollowUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/inquiries/{id}/follow-up [post]
func (h *InquiryHandler) AssignFollowUp(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req assignFollowUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inq, fu, err := h.service.AssignFollowUp(c.Request().Context(), actor, c.Param("id"), ports.AssignFollowUpInput{
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate.UTC(),
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, assignFollowUpResponse{Inquiry: inq, FollowUp: fu})
}
