package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
)

// catalogRequest is a validated form that converts into its record type.
type catalogRequest[T any] interface {
	toRecord() *T
}

// CatalogHandler serves the CRUD routes of one reference-data page.
type CatalogHandler[T any, R catalogRequest[T]] struct {
	service ports.CatalogService[T]
}

func NewBrandHandler(s ports.CatalogService[domain.Brand]) *CatalogHandler[domain.Brand, brandRequest] {
	return &CatalogHandler[domain.Brand, brandRequest]{service: s}
}

func NewProductHandler(s ports.CatalogService[domain.Product]) *CatalogHandler[domain.Product, productRequest] {
	return &CatalogHandler[domain.Product, productRequest]{service: s}
}

func NewConsumerHandler(s ports.CatalogService[domain.Consumer]) *CatalogHandler[domain.Consumer, consumerRequest] {
	return &CatalogHandler[domain.Consumer, consumerRequest]{service: s}
}

func NewConsultantHandler(s ports.CatalogService[domain.Consultant]) *CatalogHandler[domain.Consultant, consultantRequest] {
	return &CatalogHandler[domain.Consultant, consultantRequest]{service: s}
}

func (h *CatalogHandler[T, R]) List(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(page))
}

func (h *CatalogHandler[T, R]) Get(c echo.Context) error {
	doc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *CatalogHandler[T, R]) Create(c echo.Context) error {
	var req R
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Create(c.Request().Context(), req.toRecord())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *CatalogHandler[T, R]) Update(c echo.Context) error {
	var req R
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toRecord())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *CatalogHandler[T, R]) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Forms ---

type brandRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email"          validate:"required,email"`
	Phone         string `json:"phone"          validate:"required,phone10"`
	Website       string `json:"website"        validate:"omitempty,url"`
	Address       string `json:"address"        validate:"max=300"`
}

func (r brandRequest) toRecord() *domain.Brand {
	return &domain.Brand{
		Name:          strings.TrimSpace(r.Name),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:         r.Phone,
		Website:       strings.TrimSpace(r.Website),
		Address:       strings.TrimSpace(r.Address),
	}
}

type productRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	BrandID     string `json:"brand_id"     validate:"required"`
	Category    string `json:"category"     validate:"max=100"`
	ModelNumber string `json:"model_number" validate:"max=100"`
	Description string `json:"description"  validate:"max=2000"`
}

func (r productRequest) toRecord() *domain.Product {
	return &domain.Product{
		Name:        strings.TrimSpace(r.Name),
		Brand:       domain.Ref{ID: r.BrandID},
		Category:    strings.TrimSpace(r.Category),
		ModelNumber: strings.TrimSpace(r.ModelNumber),
		Description: strings.TrimSpace(r.Description),
	}
}

type consumerRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Company       string `json:"company"        validate:"max=100"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email"          validate:"required,email"`
	Phone         string `json:"phone"          validate:"required,phone10"`
	Address       string `json:"address"        validate:"max=300"`
	City          string `json:"city"           validate:"max=100"`
}

func (r consumerRequest) toRecord() *domain.Consumer {
	return &domain.Consumer{
		Name:          strings.TrimSpace(r.Name),
		Company:       strings.TrimSpace(r.Company),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:         r.Phone,
		Address:       strings.TrimSpace(r.Address),
		City:          strings.TrimSpace(r.City),
	}
}

type consultantRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Firm    string `json:"firm"    validate:"max=100"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required,phone10"`
	Address string `json:"address" validate:"max=300"`
}

func (r consultantRequest) toRecord() *domain.Consultant {
	return &domain.Consultant{
		Name:    strings.TrimSpace(r.Name),
		Firm:    strings.TrimSpace(r.Firm),
		Email:   strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:   r.Phone,
		Address: strings.TrimSpace(r.Address),
	}
}
