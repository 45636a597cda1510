package handler

import (
	"errors"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookmarkHandler struct {
	uc usecase.BookmarkUsecase
}

func NewBookmarkHandler(uc usecase.BookmarkUsecase) *BookmarkHandler {
	return &BookmarkHandler{uc: uc}
}

func (h *BookmarkHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/bookmarks")
	grp.Get("/", h.List)
	grp.Post("/:job_id", h.Save)
	grp.Delete("/:job_id", h.Unsave)
}

func (h *BookmarkHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListSavedJobs(c.Context(), userID)
	if err != nil {
		return mapBookmarkUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *BookmarkHandler) Save(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.SaveJob(c.Context(), userID, jobID); err != nil {
		return mapBookmarkUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job saved", nil)
}

func (h *BookmarkHandler) Unsave(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UnsaveJob(c.Context(), userID, jobID); err != nil {
		return mapBookmarkUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapBookmarkUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyBookmarked):
		return middleware.NewAppError(fiber.StatusConflict, "Job already saved", nil, err)
	case errors.Is(err, usecase.ErrBookmarkNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Bookmark not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
