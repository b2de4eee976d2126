package search

import "backend-roamio/internal/catalog"

// ResultItem is one matched entity in a search response.
type ResultItem struct {
	Name        string       `json:"name"`
	Category    catalog.Kind `json:"category"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Tags        string       `json:"tags"`
	Images      []string     `json:"images"`
}

// Detail is the single-entity view returned by a detail lookup.
type Detail struct {
	Name         string       `json:"name"`
	Category     catalog.Kind `json:"category"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Tags         string       `json:"tags"`
	Images       []string     `json:"images"`
	WikipediaURL string       `json:"wikipedia_url"`
}

type Query struct {
	Q string `validate:"min=1"`
}
