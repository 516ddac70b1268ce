package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

type FollowUpHandler struct {
	service ports.FollowUpService
}

func NewFollowUpHandler(service ports.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{service: service}
}

type followUpRequest struct {
	Name        string     `json:"name"        validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueDate     *time.Time `json:"due_date"    validate:"required"`
	AssignedTo  string     `json:"assigned_to" validate:"required"`
	InquiryID   string     `json:"inquiry_id"`
}

func (r followUpRequest) toInput() ports.FollowUpInput {
	return ports.FollowUpInput{
		Name:        r.Name,
		Description: r.Description,
		DueDate:     r.DueDate.UTC(),
		AssignedTo:  r.AssignedTo,
		InquiryID:   r.InquiryID,
	}
}

// List handles GET /v1/follow-ups.
//
// @Summary      List follow-ups
// @Tags         follow-ups
// @Produce      json
// @Security     BearerAuth
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Param        search       query     string  false  "Name or description"
// @Param        status       query     string  false  "pending or completed"
// @Param        assigned_to  query     string  false  "Assignee user id"
// @Param        overdue      query     bool    false  "Only pending follow-ups past their due date"
// @Success      200          {object}  listResponse[domain.FollowUp]
// @Failure      400          {object}  errorResponse
// @Router       /v1/follow-ups [get]
func (h *FollowUpHandler) List(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return err
	}
	overdue, err := queryBool(c, "overdue")
	if err != nil {
		return err
	}

	filter := domain.FollowUpFilter{
		ListQuery:  q,
		AssignedTo: c.QueryParam("assigned_to"),
		Overdue:    overdue != nil && *overdue,
	}
	if raw := c.QueryParam("status"); raw != "" {
		if filter.Status, err = domain.ParseFollowUpStatus(raw); err != nil {
			return err
		}
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

func (h *FollowUpHandler) Get(c echo.Context) error {
	fu, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fu)
}

// Create handles POST /v1/follow-ups.
//
// @Summary      Create a follow-up
// @Tags         follow-ups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      followUpRequest  true  "Follow-up"
// @Success      201   {object}  domain.FollowUp
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/follow-ups [post]
func (h *FollowUpHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req followUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	fu, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fu)
}

func (h *FollowUpHandler) Update(c echo.Context) error {
	var req followUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fu, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fu)
}

func (h *FollowUpHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleStatus handles PUT /v1/follow-ups/:id/status.
//
// @Summary      Toggle a follow-up between pending and completed
// @Tags         follow-ups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Follow-up id"
// @Success      200  {object}  domain.FollowUp
// @Failure      404  {object}  errorResponse
// @Router       /v1/follow-ups/{id}/status [put]
func (h *FollowUpHandler) ToggleStatus(c echo.Context) error {
	fu, err := h.service.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fu)
}
