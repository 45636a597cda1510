package handler

import (
	"errors"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	JobID uuid.UUID `json:"job_id"`
	Note  string    `json:"note"`
}

type updateApplicationRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/applications")
	grp.Get("/", h.List)
	grp.Post("/", h.Apply)
	grp.Patch("/:job_id", h.UpdateStatus)
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListApplications(c.Context(), userID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Apply(c.Context(), userID, req.JobID, req.Note)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application created", created)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), userID, jobID, req.Status, req.Note)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Status transition not allowed", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
