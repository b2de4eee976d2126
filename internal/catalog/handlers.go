package catalog

import (
	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts list, count and create endpoints for every kind.
func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	for _, kind := range Kinds {
		registerKind(r.Group(kind.Route()), svc, kind, authMiddleware)
	}
}

func registerKind(r fiber.Router, svc *Service, kind Kind, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		entities, err := svc.List(c.Context(), kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(entities)
	})

	r.Get("/count", func(c *fiber.Ctx) error {
		n, err := svc.Count(c.Context(), kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"count": n})
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Entity
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		created, err := svc.Create(c.Context(), kind, req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})
}
