package places

import (
	"context"
	"errors"

	"backend-roamio/internal/db"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("place not found")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Place) (Place, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO places (name, location, type, description, tags, image_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at
	`, input.Name, input.Location, input.Type, input.Description, input.Tags, input.ImageURL)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Place{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Place, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(location,''), COALESCE(type,''), COALESCE(description,''),
		       COALESCE(tags,''), COALESCE(image_url,''), created_at
		FROM places WHERE id=$1
	`, id)
	var p Place
	err := row.Scan(&p.ID, &p.Name, &p.Location, &p.Type, &p.Description, &p.Tags, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Place{}, ErrNotFound
	}
	if err != nil {
		return Place{}, err
	}
	return p, nil
}

// List returns every place, newest first.
func (s *Service) List(ctx context.Context) ([]Place, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(location,''), COALESCE(type,''), COALESCE(description,''),
		       COALESCE(tags,''), COALESCE(image_url,''), created_at
		FROM places
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []Place{}
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Type, &p.Description, &p.Tags, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}
