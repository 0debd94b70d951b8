package handlers

import (
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/database"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	cache cache.Cache
}

func NewHealthHandler(c cache.Cache) *HealthHandler {
	return &HealthHandler{cache: c}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "ok"
	if _, noop := h.cache.(cache.Noop); noop {
		cacheStatus = "disabled"
	} else if err := h.cache.Ping(c.UserContext()); err != nil {
		cacheStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
