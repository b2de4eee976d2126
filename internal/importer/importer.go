// Package importer bulk-loads hotels, restaurants and attractions from a
// CSV or XLSX dataset with the columns name, type, location, description,
// tags and image_url.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"backend-roamio/internal/catalog"
	"backend-roamio/internal/logging"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Creator is the write side of catalog.Service.
type Creator interface {
	Create(ctx context.Context, kind catalog.Kind, input catalog.Entity) (catalog.Entity, error)
}

// Report summarises one import run.
type Report struct {
	Imported map[catalog.Kind]int `json:"imported"`
	Skipped  int                  `json:"skipped"`
}

type Importer struct {
	store Creator
}

func New(store Creator) *Importer {
	return &Importer{store: store}
}

// ImportFile picks the reader by extension.
func (im *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := readCSVFile(path)
		if err != nil {
			return Report{}, err
		}
		return im.Import(ctx, rows)
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return Report{}, err
		}
		defer f.Close()
		rows, err := readSheet(f)
		if err != nil {
			return Report{}, err
		}
		return im.Import(ctx, rows)
	}
	return Report{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// ImportCSV reads a CSV stream with a header row.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (Report, error) {
	rows, err := newCSVReader(r).ReadAll()
	if err != nil {
		return Report{}, err
	}
	return im.Import(ctx, rows)
}

// Import loads header + data rows. Rows with an unknown type or no name are
// skipped; only the first of several comma-joined image URLs is kept.
func (im *Importer) Import(ctx context.Context, rows [][]string) (Report, error) {
	report := Report{Imported: map[catalog.Kind]int{}}
	if len(rows) == 0 {
		return report, nil
	}

	header := indexHeader(rows[0])
	for i, row := range rows[1:] {
		rec := record{header: header, row: row}
		kind, ok := catalog.ParseKind(rec.get("type"))
		name := rec.get("name")
		if !ok || name == "" {
			report.Skipped++
			logging.Debug().Int("row", i+2).Str("type", rec.get("type")).Msg("skipping dataset row")
			continue
		}

		entity := catalog.Entity{
			Name:        name,
			Location:    rec.get("location"),
			Description: rec.get("description"),
			Tags:        rec.get("tags"),
			ImageURL:    firstImage(rec.get("image_url")),
		}
		if _, err := im.store.Create(ctx, kind, entity); err != nil {
			return report, fmt.Errorf("row %d: %w", i+2, err)
		}
		report.Imported[kind]++
	}
	return report, nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return newCSVReader(f).ReadAll()
}

// newCSVReader accepts rows shorter or longer than the header; missing
// columns read as empty.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

func readSheet(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

type record struct {
	header map[string]int
	row    []string
}

func (r record) get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func firstImage(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(strings.Split(raw, ",")[0])
}
