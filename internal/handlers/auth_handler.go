package handlers

import (
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/middleware"
	"github.com/Sophavisnuka/real-estate-agency/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := h.authService.RegisterStaff(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "staff.register", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TokenResponse{Success: true, AccessToken: token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := h.authService.LoginStaff(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "staff.login", err)
	}

	return c.JSON(dto.TokenResponse{Success: true, AccessToken: token})
}

// CheckAuth echoes the verified staff claims back to the client.
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	claims, ok := middleware.StaffClaims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Unauthorized"})
	}
	return c.JSON(dto.CheckAuthResponse{Success: true, User: claims})
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.GoogleLogin(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "user.google_login", err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Unauthorized"})
	}

	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "user.me", err)
	}

	return c.JSON(dto.Response{Success: true, Data: user})
}
