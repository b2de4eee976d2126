package newsletter

import (
	"context"
	"strings"

	"backend-roamio/internal/db"
	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type Subscription struct {
	Email string `json:"email" validate:"required,email"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Subscribe records email and reports whether it was new. Emails are
// stored lower-cased so repeat sign-ups collapse onto one row.
func (s *Service) Subscribe(ctx context.Context, email string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT DO NOTHING
	`, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/subscribe", func(c *fiber.Ctx) error {
		var req Subscription
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.Email = strings.TrimSpace(req.Email)
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		created, err := svc.Subscribe(c.Context(), req.Email)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !created {
			return c.JSON(fiber.Map{"message": "Already subscribed"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Subscribed successfully"})
	})
}
