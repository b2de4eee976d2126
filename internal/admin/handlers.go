package admin

import (
	"errors"

	"backend-roamio/internal/auth"
	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts admin login and the dashboard. guard protects every
// dashboard endpoint.
func RegisterRoutes(r fiber.Router, svc *Service, authSvc *auth.Service, guard ...fiber.Handler) {
	r.Post("/login", func(c *fiber.Ctx) error {
		var req auth.AdminLoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Missing data")
		}
		if validation.Struct(req) != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Username and password required")
		}
		admin, tokens, err := authSvc.AdminLogin(c.Context(), req)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"message":  "Admin login successful",
			"admin_id": admin.ID,
			"username": admin.Username,
			"token":    tokens,
		})
	})

	dash := r.Group("/dashboard", guard...)

	dash.Get("/user-count", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"totalUsers": svc.UserCount(c.Context())})
	})

	dash.Get("/new-users", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"newUsersThisMonth": svc.NewUsersThisMonth(c.Context())})
	})

	dash.Get("/total-bookings", func(c *fiber.Ctx) error {
		n, err := svc.TotalBookings(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"totalBookings": n})
	})

	dash.Get("/bookings-per-city", func(c *fiber.Ctx) error {
		rows, err := svc.BookingsPerCity(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rows)
	})
}
