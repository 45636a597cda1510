package handler

import (
	"strconv"
	"time"

	"jobpath/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func currentUserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	return id, ok
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseQueryFloat(c fiber.Ctx, key string, defaultVal float64) float64 {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func formatPostedDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
