package rooms

import (
	"context"

	"backend-roamio/internal/db"
	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type Room struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, room Room) (Room, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO rooms (name, description, price, image)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, room.Name, room.Description, room.Price, room.Image)
	if err := row.Scan(&room.ID); err != nil {
		return Room{}, err
	}
	return room, nil
}

func (s *Service) List(ctx context.Context) ([]Room, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(price,0), COALESCE(image,'')
		FROM rooms ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []Room{}
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Price, &r.Image); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Room
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		room, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(room)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		rooms, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rooms)
	})
}
