package handler

import (
	"errors"

	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Detail)
}

func (h *JobHandler) List(c fiber.Ctx) error {
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

	items, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := make([]dto.JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toJobResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Detail(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobResponse(item))
}

func toJobResponse(it usecase.JobItem) dto.JobResponse {
	return dto.JobResponse{
		JobID:       it.JobID,
		Title:       it.Title,
		Company:     it.Company,
		Location:    it.Location,
		Description: it.Description,
		URL:         it.URL,
		Skills:      it.RequiredSkills,
		PostedDate:  formatPostedDate(it.PostedAt),
	}
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
