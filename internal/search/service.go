package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"backend-roamio/internal/catalog"
	"backend-roamio/internal/db"

	"github.com/jackc/pgx/v5"
)

const (
	suggestionsPerKind = 5
	wikipediaBaseURL   = "https://en.wikipedia.org/wiki/"
)

// Mode reports which pass produced a search result.
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModeFallback  Mode = "fallback"
	ModeEmpty     Mode = "empty"
)

var (
	ErrEmptyQuery = errors.New("query must not be empty")
	ErrNotFound   = errors.New("not found")
)

// NotFoundError names the kind and name a detail lookup missed.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found with name '%s'", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Service struct {
	db     db.Querier
	images *Images
}

func NewService(db db.Querier, images *Images) *Service {
	return &Service{db: db, images: images}
}

// Search matches q against name, tags and description of every entity,
// grouped Lodging, Dining, Attraction in id order. When nothing matches it
// falls back to names starting with the first character of q.
func (s *Service) Search(ctx context.Context, q string) ([]ResultItem, Mode, error) {
	if q == "" {
		return nil, "", ErrEmptyQuery
	}

	results, err := s.scan(ctx, `name ILIKE $1 OR tags ILIKE $1 OR description ILIKE $1`, db.Contains(q))
	if err != nil {
		return nil, "", err
	}
	if len(results) > 0 {
		return results, ModeSubstring, nil
	}

	first, _ := utf8.DecodeRuneInString(q)
	results, err = s.scan(ctx, `name ILIKE $1`, db.Prefix(string(first)))
	if err != nil {
		return nil, "", err
	}
	if len(results) > 0 {
		return results, ModeFallback, nil
	}
	return results, ModeEmpty, nil
}

func (s *Service) scan(ctx context.Context, where, pattern string) ([]ResultItem, error) {
	results := []ResultItem{}
	for _, kind := range catalog.Kinds {
		entities, err := s.match(ctx, kind, where, pattern)
		if err != nil {
			return nil, err
		}
		for _, e := range entities {
			results = append(results, ResultItem{
				Name:        e.Name,
				Category:    kind,
				Description: e.Description,
				Location:    e.Location,
				Tags:        e.Tags,
				Images:      s.images.For(e.Name),
			})
		}
	}
	return results, nil
}

func (s *Service) match(ctx context.Context, kind catalog.Kind, where, pattern string) ([]catalog.Entity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+catalog.Columns+`
		FROM `+kind.Table()+`
		WHERE `+where+`
		ORDER BY id
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []catalog.Entity
	for rows.Next() {
		e, err := catalog.ScanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// Suggestions returns up to five names per kind containing q, without
// repeats, in kind order.
func (s *Service) Suggestions(ctx context.Context, q string) ([]string, error) {
	if q == "" {
		return nil, ErrEmptyQuery
	}

	seen := map[string]struct{}{}
	names := []string{}
	for _, kind := range catalog.Kinds {
		rows, err := s.db.Query(ctx, `
			SELECT name FROM `+kind.Table()+`
			WHERE name ILIKE $1
			ORDER BY id
			LIMIT $2
		`, db.Contains(q), suggestionsPerKind)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, err
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Details looks an entity up by exact name within kind. kind is echoed back
// verbatim in the not-found error.
func (s *Service) Details(ctx context.Context, kind, name string) (Detail, error) {
	k, ok := catalog.ParseKind(kind)
	if !ok {
		return Detail{}, &NotFoundError{Kind: kind, Name: name}
	}

	row := s.db.QueryRow(ctx, `
		SELECT `+catalog.Columns+`
		FROM `+k.Table()+`
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`, name)
	e, err := catalog.ScanEntity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, &NotFoundError{Kind: kind, Name: name}
	}
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Name:         e.Name,
		Category:     k,
		Description:  e.Description,
		Location:     e.Location,
		Tags:         e.Tags,
		Images:       s.images.For(e.Name),
		WikipediaURL: WikipediaURL(e.Name),
	}, nil
}

// WikipediaURL builds a best-effort article link; it is never checked.
func WikipediaURL(name string) string {
	return wikipediaBaseURL + strings.ReplaceAll(name, " ", "_")
}
