package handlers

import (
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// List serves the public search over available properties.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	f := services.ParseSearchFilter(c.Query)

	rows, meta, err := h.propertyService.Search(c.UserContext(), f)
	if err != nil {
		return respondError(c, "property.search", err)
	}

	return c.JSON(dto.Response{Success: true, Data: rows, Meta: &meta})
}

// AdminList is the staff listing across every status, optionally narrowed
// with ?status=.
func (h *PropertyHandler) AdminList(c *fiber.Ctx) error {
	f := services.ParseSearchFilter(c.Query)
	if s := c.Query("status"); s != "" {
		st, ok := models.ParsePropertyStatus(s)
		if !ok {
			return badRequest(c, services.ErrInvalidPropertyStatus.Error())
		}
		f.Statuses = []models.PropertyStatus{st}
	}

	rows, meta, err := h.propertyService.AdminSearch(c.UserContext(), f)
	if err != nil {
		return respondError(c, "property.admin_search", err)
	}

	return c.JSON(dto.Response{Success: true, Data: rows, Meta: &meta})
}

func (h *PropertyHandler) Count(c *fiber.Ctx) error {
	n, err := h.propertyService.Count(c.UserContext())
	if err != nil {
		return respondError(c, "property.count", err)
	}
	return c.JSON(dto.Response{Success: true, Data: fiber.Map{"count": n}})
}

func (h *PropertyHandler) Top(c *fiber.Ctx) error {
	rows, err := h.propertyService.Top(c.UserContext())
	if err != nil {
		return respondError(c, "property.top", err)
	}
	return c.JSON(dto.Response{Success: true, Data: rows})
}

func (h *PropertyHandler) Similar(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property id")
	}

	rows, err := h.propertyService.Similar(c.UserContext(), id)
	if err != nil {
		return respondError(c, "property.similar", err)
	}
	return c.JSON(dto.Response{Success: true, Data: rows})
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property id")
	}

	detail, err := h.propertyService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, "property.get", err)
	}
	return c.JSON(dto.Response{Success: true, Data: detail})
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	property, err := h.propertyService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "property.create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: property.ID})
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property id")
	}

	var req dto.UpdatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.propertyService.Update(c.UserContext(), id, &req); err != nil {
		return respondError(c, "property.update", err)
	}

	return c.JSON(dto.Response{Success: true, Message: "Property updated"})
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid property id")
	}

	if err := h.propertyService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, "property.delete", err)
	}

	return c.JSON(dto.Response{Success: true, Message: "Property deleted"})
}
