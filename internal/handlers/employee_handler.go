package handlers

import (
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.employeeService.List(c.UserContext())
	if err != nil {
		return respondError(c, "employee.list", err)
	}
	return c.JSON(dto.Response{Success: true, Data: employees})
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee id")
	}

	employee, err := h.employeeService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, "employee.get", err)
	}
	return c.JSON(dto.Response{Success: true, Data: employee})
}

// Profile takes the id from the query string: /employeeProfile?id=3.
func (h *EmployeeHandler) Profile(c *fiber.Ctx) error {
	id := c.QueryInt("id")
	if id <= 0 {
		return badRequest(c, "Invalid employee id")
	}

	profile, err := h.employeeService.Profile(c.UserContext(), uint(id))
	if err != nil {
		return respondError(c, "employee.profile", err)
	}
	return c.JSON(dto.Response{Success: true, Data: profile})
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "employee.create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: employee.ID})
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee id")
	}

	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, "employee.update", err)
	}
	return c.JSON(dto.Response{Success: true, Data: employee})
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid employee id")
	}

	if err := h.employeeService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, "employee.delete", err)
	}
	return c.JSON(dto.Response{Success: true, Message: "Employee deleted"})
}
