package handler

import (
	"errors"
	"time"

	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/pkg/response"
	"jobpath/internal/repository"
	"jobpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type addEducationRequest struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    *int   `json:"start_year"`
	EndYear      *int   `json:"end_year"`
}

type addExperienceRequest struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type setPreferencesRequest struct {
	DesiredRoles       []string `json:"desired_roles"`
	PreferredLocations []string `json:"preferred_locations"`
	MinSalary          *int64   `json:"min_salary"`
	MaxSalary          *int64   `json:"max_salary"`
	RemoteOK           bool     `json:"remote_ok"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/profile")
	grp.Get("/education", h.ListEducation)
	grp.Post("/education", h.AddEducation)
	grp.Delete("/education/:id", h.RemoveEducation)
	grp.Get("/experience", h.ListExperience)
	grp.Post("/experience", h.AddExperience)
	grp.Delete("/experience/:id", h.RemoveExperience)
	grp.Get("/preferences", h.GetPreferences)
	grp.Put("/preferences", h.SetPreferences)
	grp.Get("/completeness", h.GetCompleteness)
}

func (h *ProfileHandler) ListEducation(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListEducation(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	out := make([]dto.EducationResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEducationResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addEducationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddEducation(c.Context(), userID, usecase.EducationInput{
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Education added", toEducationResponse(created))
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveEducation(c.Context(), userID, id); err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProfileHandler) ListExperience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListExperience(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	out := make([]dto.ExperienceResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toExperienceResponse(e))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddExperience(c.Context(), userID, usecase.ExperienceInput{
		Company:     req.Company,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Experience added", toExperienceResponse(created))
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveExperience(c.Context(), userID, id); err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProfileHandler) GetPreferences(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetPreferences(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toPreferencesResponse(p))
}

func (h *ProfileHandler) SetPreferences(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req setPreferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.SetPreferences(c.Context(), userID, usecase.PreferencesInput{
		DesiredRoles:       req.DesiredRoles,
		PreferredLocations: req.PreferredLocations,
		MinSalary:          req.MinSalary,
		MaxSalary:          req.MaxSalary,
		RemoteOK:           req.RemoteOK,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toPreferencesResponse(p))
}

func (h *ProfileHandler) GetCompleteness(c fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	comp, err := h.uc.GetCompleteness(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	res := dto.CompletenessResponse{
		Education:   comp.Education,
		Experience:  comp.Experience,
		Skills:      comp.Skills,
		Preferences: comp.Preferences,
		Percent:     comp.Percent(),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toEducationResponse(e repository.EducationEntry) dto.EducationResponse {
	return dto.EducationResponse{
		ID:           e.ID,
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartYear:    e.StartYear,
		EndYear:      e.EndYear,
	}
}

func toExperienceResponse(e repository.ExperienceEntry) dto.ExperienceResponse {
	out := dto.ExperienceResponse{
		ID:          e.ID,
		Company:     e.Company,
		Title:       e.Title,
		Description: e.Description,
	}
	if e.StartDate != nil {
		out.StartDate = e.StartDate.Format("2006-01-02")
	}
	if e.EndDate != nil {
		out.EndDate = e.EndDate.Format("2006-01-02")
	}
	return out
}

func toPreferencesResponse(p repository.Preferences) dto.PreferencesResponse {
	return dto.PreferencesResponse{
		DesiredRoles:       p.DesiredRoles,
		PreferredLocations: p.PreferredLocations,
		MinSalary:          p.MinSalary,
		MaxSalary:          p.MaxSalary,
		RemoteOK:           p.RemoteOK,
	}
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileEntryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Entry not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
