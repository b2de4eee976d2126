package wishlist

import (
	"errors"
	"strconv"

	"backend-roamio/internal/places"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:user_id", func(c *fiber.Ctx) error {
		items, err := svc.List(c.Context(), c.Params("user_id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(items)
	})

	r.Post("/:user_id/:place_id", func(c *fiber.Ctx) error {
		placeID, err := placeIDParam(c)
		if err != nil {
			return err
		}
		entry, err := svc.Add(c.Context(), c.Params("user_id"), placeID)
		if errors.Is(err, places.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Place not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true, "message": "Added to wishlist", "wishlist_id": entry.ID})
	})

	r.Delete("/:user_id/:place_id", func(c *fiber.Ctx) error {
		placeID, err := placeIDParam(c)
		if err != nil {
			return err
		}
		err = svc.Remove(c.Context(), c.Params("user_id"), placeID)
		if errors.Is(err, ErrNotInWishlist) {
			return fiber.NewError(fiber.StatusNotFound, "Item not found in wishlist")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true, "message": "Removed from wishlist"})
	})

	r.Get("/:user_id/:place_id/check", func(c *fiber.Ctx) error {
		placeID, err := placeIDParam(c)
		if err != nil {
			return err
		}
		ok, err := svc.Contains(c.Context(), c.Params("user_id"), placeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"in_wishlist": ok})
	})
}

func placeIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("place_id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "place_id must be an integer")
	}
	return id, nil
}
