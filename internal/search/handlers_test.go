package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/spf13/afero"
)

func TestSearchHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM hotels`).WithArgs("%lake%").WillReturnRows(lakesideRows())
	mock.ExpectQuery(`FROM restaurants`).WithArgs("%lake%").WillReturnRows(emptyRows())
	mock.ExpectQuery(`FROM attractions`).WithArgs("%lake%").WillReturnRows(emptyRows())

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, NewImages(afero.NewMemMapFs(), "img")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search?q=lake", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("search status: %v", err)
	}
	var body struct {
		Results []ResultItem `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Category != "Lodging" {
		t.Fatalf("unexpected results: %+v", body.Results)
	}
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, NewService(nil, nil))

	for _, path := range []string{"/search", "/search?q=", "/search/suggestions"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil || resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected bad request", path)
		}
	}
}

func TestSearchHandlerEmptyResultIsList(t *testing.T) {
	mock := newMock(t)
	for i := 0; i < 6; i++ {
		mock.ExpectQuery(`SELECT`).WillReturnRows(emptyRows())
	}

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search?q=zzz-no-match", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("search status: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"results":[]}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestSuggestionsHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT name FROM hotels`).WithArgs("%cafe%", 5).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))
	mock.ExpectQuery(`SELECT name FROM restaurants`).WithArgs("%cafe%", 5).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Cafe Annapurna"))
	mock.ExpectQuery(`SELECT name FROM attractions`).WithArgs("%cafe%", 5).
		WillReturnRows(pgxmock.NewRows([]string{"name"}))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search/suggestions?q=cafe", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("suggestions status: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"suggestions":["Cafe Annapurna"]}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestDetailsHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM hotels\s+WHERE name = \$1`).WithArgs("Pokhara Lakeside Resort").WillReturnRows(lakesideRows())
	mock.ExpectQuery(`FROM hotels\s+WHERE name = \$1`).WithArgs("NonexistentName").WillReturnRows(emptyRows())

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/details/hotel/Pokhara%20Lakeside%20Resort", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("details status: %v", err)
	}
	var detail Detail
	_ = json.NewDecoder(resp.Body).Decode(&detail)
	if detail.Name != "Pokhara Lakeside Resort" || detail.WikipediaURL == "" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/details/hotel/NonexistentName", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"error":"No hotel found with name 'NonexistentName'"}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestDetailsHandlerQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`FROM restaurants`).WithArgs("Broken").WillReturnError(errSearch)

	app := fiber.New()
	RegisterRoutes(app, NewService(mock, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/details/restaurant/Broken", nil))
	if err != nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected server error")
	}
}
