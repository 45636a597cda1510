package handler

import (
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillCatalogUsecase
}

func NewSkillHandler(uc usecase.SkillCatalogUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.List)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	search := c.Query("search")
	limit := parseQueryInt(c, "limit", 100)

	items, err := h.uc.ListSkills(c.Context(), search, limit)
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
