package routes

import (
	"time"

	"github.com/Sophavisnuka/real-estate-agency/internal/config"
	"github.com/Sophavisnuka/real-estate-agency/internal/handlers"
	"github.com/Sophavisnuka/real-estate-agency/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Property *handlers.PropertyHandler
	Employee *handlers.EmployeeHandler
	Visit    *handlers.VisitHandler
	Upload   *handlers.UploadHandler
}

func perIPLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(perIPLimiter(120))

	api.Get("/health", h.Health.Check)

	// Public property reads. Fixed paths come before /:id.
	properties := api.Group("/properties")
	properties.Get("/", h.Property.List)
	properties.Get("/count", h.Property.Count)
	properties.Get("/top", h.Property.Top)
	properties.Get("/similar/:id", h.Property.Similar)
	properties.Get("/:id", h.Property.Get)

	staff := middleware.StaffProtected(cfg)

	// Staff: auth
	admins := api.Group("/admins")
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	admins.Post("/login", perIPLimiter(10), h.Auth.Login)
	admins.Post("/register", perIPLimiter(10), middleware.AdminRequired(cfg), h.Auth.Register)
	admins.Get("/check-auth", staff, h.Auth.CheckAuth)

	// Staff: uploads
	admins.Post("/upload/thumbnail", staff, h.Upload.Thumbnail)
	admins.Post("/upload/images", staff, h.Upload.Images)
	admins.Post("/upload/employeeProfile", staff, h.Upload.EmployeeProfile)

	// Staff: employees
	admins.Get("/employees", staff, h.Employee.List)
	admins.Get("/employees/:id", staff, h.Employee.Get)
	admins.Get("/employeeProfile", staff, h.Employee.Profile)
	admins.Post("/createEmployee", staff, h.Employee.Create)
	admins.Put("/employees/:id", staff, h.Employee.Update)
	admins.Delete("/employees/:id", staff, h.Employee.Delete)

	// Staff: property management
	admins.Get("/", staff, h.Property.AdminList)
	admins.Post("/", staff, h.Property.Create)
	admins.Put("/:id", staff, h.Property.Update)
	admins.Delete("/:id", staff, h.Property.Delete)

	// End users
	user := middleware.UserProtected(cfg)
	api.Post("/user/auth/google-login", perIPLimiter(10), h.Auth.GoogleLogin)
	api.Get("/user", user, h.Auth.Me)
	api.Get("/user/requests", user, h.Visit.Mine)

	// Visit requests: users create, staff manage
	api.Post("/requests", user, h.Visit.Create)
	api.Get("/requests", staff, h.Visit.List)
	api.Get("/requests/:id", staff, h.Visit.Get)
	api.Put("/requests/:id", staff, h.Visit.Update)
	api.Delete("/requests/:id", staff, h.Visit.Delete)
}
