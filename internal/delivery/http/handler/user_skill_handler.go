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

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Kind    string    `json:"kind"`
}

type updateUserSkillRequest struct {
	Kind string `json:"kind"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:skill_id", h.Update)
	grp.Delete("/:skill_id", h.Delete)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toUserSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddUserSkill(c.Context(), userID, usecase.AddUserSkillInput{
		SkillID: req.SkillID,
		Kind:    req.Kind,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added", toUserSkillResponse(created))
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateUserSkillKind(c.Context(), userID, skillID, req.Kind)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserSkillResponse(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toUserSkillResponse(it usecase.UserSkillItem) dto.UserSkillResponse {
	return dto.UserSkillResponse{
		ID:        it.ID,
		SkillID:   it.SkillID,
		SkillName: it.SkillName,
		Kind:      it.Kind,
	}
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSkillKind):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill kind", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
