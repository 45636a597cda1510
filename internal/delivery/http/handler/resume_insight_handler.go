package handler

import (
	"errors"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeInsightHandler struct {
	uc usecase.ResumeInsightUsecase
}

func NewResumeInsightHandler(uc usecase.ResumeInsightUsecase) *ResumeInsightHandler {
	return &ResumeInsightHandler{uc: uc}
}

func (h *ResumeInsightHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/insights", h.Get)
}

func (h *ResumeInsightHandler) Get(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	insight, err := h.uc.GetInsights(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, insight)
}
