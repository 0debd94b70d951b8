package handlers

import (
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/middleware"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VisitHandler struct {
	visitService *services.VisitService
}

func NewVisitHandler(visitService *services.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

func (h *VisitHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Unauthorized"})
	}

	var req dto.CreateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	visit, err := h.visitService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, "visit.create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: visit})
}

// Mine lists the caller's own requests.
func (h *VisitHandler) Mine(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Unauthorized"})
	}

	rows, err := h.visitService.ListForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "visit.list_mine", err)
	}
	return c.JSON(dto.Response{Success: true, Data: rows})
}

func (h *VisitHandler) List(c *fiber.Ctx) error {
	rows, err := h.visitService.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, "visit.list", err)
	}
	return c.JSON(dto.Response{Success: true, Data: rows})
}

func (h *VisitHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid request id")
	}

	detail, err := h.visitService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, "visit.get", err)
	}
	return c.JSON(dto.Response{Success: true, Data: detail})
}

func (h *VisitHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid request id")
	}

	var req dto.UpdateVisitRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	detail, err := h.visitService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, "visit.update", err)
	}
	return c.JSON(dto.Response{Success: true, Data: detail})
}

func (h *VisitHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid request id")
	}

	if err := h.visitService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, "visit.delete", err)
	}
	return c.JSON(dto.Response{Success: true, Message: "Visit request deleted"})
}
