package handler

import (
	"errors"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/companies")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Detail)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	limit := parseQueryInt(c, "limit", 20)
	offset := parseQueryInt(c, "offset", 0)
	if limit > 100 {
		limit = 100
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.uc.ListCompanies(c.Context(), c.Query("search"), limit, offset)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CompanyHandler) Detail(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.uc.GetCompany(c.Context(), id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, detail)
}

func mapCompanyUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
