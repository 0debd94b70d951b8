package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/imagestore"
	"github.com/Sophavisnuka/real-estate-agency/internal/middleware"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
)

var errorStatus = []struct {
	err  error
	code int
}{
	{services.ErrInvalidProperty, fiber.StatusBadRequest},
	{services.ErrInvalidPropertyStatus, fiber.StatusBadRequest},
	{services.ErrAmountOutOfRange, fiber.StatusBadRequest},
	{services.ErrInvalidEmployee, fiber.StatusBadRequest},
	{services.ErrInvalidDate, fiber.StatusBadRequest},
	{services.ErrCredentialsMissing, fiber.StatusBadRequest},
	{services.ErrInvalidEmployeeID, fiber.StatusBadRequest},
	{services.ErrInvalidVisitRequest, fiber.StatusBadRequest},
	{services.ErrInvalidPreferredDate, fiber.StatusBadRequest},
	{services.ErrPreferredDateInPast, fiber.StatusBadRequest},
	{services.ErrInvalidStatus, fiber.StatusBadRequest},
	{services.ErrAssigneeRequired, fiber.StatusBadRequest},

	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrIdentityTokenInvalid, fiber.StatusUnauthorized},

	{services.ErrPropertyNotFound, fiber.StatusNotFound},
	{services.ErrAmenityNotFound, fiber.StatusNotFound},
	{services.ErrNoSimilarProperty, fiber.StatusNotFound},
	{services.ErrEmployeeNotFound, fiber.StatusNotFound},
	{services.ErrStaffNotFound, fiber.StatusNotFound},
	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrVisitRequestNotFound, fiber.StatusNotFound},

	{services.ErrUsernameTaken, fiber.StatusConflict},
	{services.ErrInvalidTransition, fiber.StatusConflict},

	{imagestore.ErrDisabled, fiber.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return fiber.StatusInternalServerError
}

// respondError writes the envelope for a service error. Server errors are
// logged with request context and reported with a generic message.
func respondError(c *fiber.Ctx, action string, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"actor_id", middleware.ActorID(c),
			"action", action,
			"error", err.Error(),
		)
		message = "Internal server error"
	}
	return c.Status(code).JSON(dto.Response{Success: false, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Message: message})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
