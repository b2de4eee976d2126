package catalog

import (
	"context"
	"errors"

	"backend-roamio/internal/db"
)

var ErrUnknownKind = errors.New("unknown entity kind")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Columns is the select list shared by every query over an entity table.
const Columns = `id, name, COALESCE(location,''), COALESCE(description,''), COALESCE(tags,''), COALESCE(image_url,'')`

// Scanner is the subset of pgx.Row / pgx.Rows needed to read an Entity.
type Scanner interface {
	Scan(dest ...any) error
}

func ScanEntity(row Scanner) (Entity, error) {
	var e Entity
	err := row.Scan(&e.ID, &e.Name, &e.Location, &e.Description, &e.Tags, &e.ImageURL)
	return e, err
}

func (s *Service) Create(ctx context.Context, kind Kind, input Entity) (Entity, error) {
	table := kind.Table()
	if table == "" {
		return Entity{}, ErrUnknownKind
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO `+table+` (name, location, description, tags, image_url)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, input.Name, input.Location, input.Description, input.Tags, input.ImageURL)
	if err := row.Scan(&input.ID); err != nil {
		return Entity{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Entity, error) {
	table := kind.Table()
	if table == "" {
		return nil, ErrUnknownKind
	}
	rows, err := s.db.Query(ctx, `SELECT `+Columns+` FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := []Entity{}
	for rows.Next() {
		e, err := ScanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

func (s *Service) Count(ctx context.Context, kind Kind) (int64, error) {
	table := kind.Table()
	if table == "" {
		return 0, ErrUnknownKind
	}
	var n int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}
