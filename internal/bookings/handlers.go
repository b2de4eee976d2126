package bookings

import (
	"errors"

	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts booking endpoints. Every route needs an
// authenticated user; authMiddleware must set the user_id local.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Post("/", func(c *fiber.Ctx) error {
		var req Booking
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Guests == 0 {
			req.Guests = 1
		}
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.UserID = userID(c)
		booking, err := svc.Create(c.Context(), req)
		if errors.Is(err, ErrInvalidDates) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(booking)
	})

	r.Get("/mine", func(c *fiber.Ctx) error {
		list, err := svc.ForUser(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(list)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		booking, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, ErrNotFound) || (err == nil && booking.UserID != userID(c)) {
			return fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(booking)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req Booking
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		booking, err := svc.Update(c.Context(), c.Params("id"), userID(c), req)
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "booking not found")
		case errors.Is(err, ErrInvalidDates):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(booking)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		err := svc.Cancel(c.Context(), c.Params("id"), userID(c))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
