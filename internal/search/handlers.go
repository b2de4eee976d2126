package search

import (
	"errors"
	"net/url"

	"backend-roamio/internal/catalog"
	"backend-roamio/internal/metrics"
	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/search", func(c *fiber.Ctx) error {
		q := Query{Q: c.Query("q")}
		if err := validation.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		results, mode, err := svc.Search(c.Context(), q.Q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		metrics.RecordSearch(string(mode))
		return c.JSON(fiber.Map{"results": results})
	})

	r.Get("/search/suggestions", func(c *fiber.Ctx) error {
		q := Query{Q: c.Query("q")}
		if err := validation.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		names, err := svc.Suggestions(c.Context(), q.Q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"suggestions": names})
	})

	r.Get("/details/:kind/:name", func(c *fiber.Ctx) error {
		kind, err := url.PathUnescape(c.Params("kind"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid kind")
		}
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid name")
		}

		label := "unknown"
		if k, ok := catalog.ParseKind(kind); ok {
			label = string(k)
		}

		detail, err := svc.Details(c.Context(), kind, name)
		if errors.Is(err, ErrNotFound) {
			metrics.RecordDetail(label, false)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		metrics.RecordDetail(label, true)
		return c.JSON(detail)
	})
}
