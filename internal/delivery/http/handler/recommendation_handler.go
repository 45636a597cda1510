package handler

import (
	"errors"

	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := parseQueryInt(c, "limit", 0)
	minScore := parseQueryFloat(c, "min_score", 0)
	if limit < 0 {
		limit = 0
	}
	if minScore < 0 || minScore > 1 {
		minScore = 0
	}

	items, err := h.uc.GetRecommendations(c.Context(), userID, usecase.RecommendationParams{
		Limit:    limit,
		MinScore: minScore,
	})
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := make([]dto.RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecommendationResponse{
			JobID:           it.JobID,
			Title:           it.Title,
			Company:         it.Company,
			Location:        it.Location,
			URL:             it.URL,
			Skills:          it.RequiredSkills,
			SimilarityScore: it.SimilarityScore,
			PostedDate:      formatPostedDate(it.PostedAt),
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrUserSkillProfileEmpty):
		return middleware.NewAppError(fiber.StatusBadRequest, "Add skills to your profile to get recommendations", nil, err)
	case errors.Is(err, usecase.ErrNoJobsFound):
		return middleware.NewAppError(fiber.StatusNotFound, "No jobs found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
