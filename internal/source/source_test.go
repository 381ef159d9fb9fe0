package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
	"github.com/pkordes/thursday-pints/backend/internal/source"
)

const visitsJSON = `[
  {"date": "2024-01-18", "breweryName": "Brewery A", "nextBrewery": "Brewery B"},
  {"date": "2024-01-11", "breweryName": "Brewery B", "isClosed": true, "notes": "last pour"}
]`

const breweriesJSON = `[
  {"brewery_name": "Brewery A", "brewery_address": "1 Malt Ave", "latitude": 37.77, "longitude": -122.42, "status": "Open"},
  {"brewery_name": "Brewery Z", "brewery_address": "26 Yeast Rd", "latitude": null, "longitude": null, "status": "Closed"}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVisitJSON_file(t *testing.T) {
	src := source.NewVisitJSON(writeFile(t, visitsJSON), nil)

	got, err := src.Visits(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Visit{Date: "2024-01-18", BreweryName: "Brewery A", NextBrewery: "Brewery B"}, got[0])
	assert.True(t, got[1].IsClosed)
	assert.Equal(t, "last pour", got[1].Notes)
}

func TestVisitJSON_missingFileIsUnavailable(t *testing.T) {
	src := source.NewVisitJSON(filepath.Join(t.TempDir(), "nope.json"), nil)

	_, err := src.Visits(context.Background())

	assert.ErrorIs(t, err, source.ErrUnavailable)
}

func TestVisitJSON_emptyFileIsUnavailable(t *testing.T) {
	src := source.NewVisitJSON(writeFile(t, "  \n"), nil)

	_, err := src.Visits(context.Background())

	assert.ErrorIs(t, err, source.ErrUnavailable)
}

func TestVisitJSON_nullIsEmptyList(t *testing.T) {
	src := source.NewVisitJSON(writeFile(t, "null"), nil)

	got, err := src.Visits(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestVisitJSON_notAnArray(t *testing.T) {
	src := source.NewVisitJSON(writeFile(t, `{"date":"2024-01-04"}`), nil)

	_, err := src.Visits(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, source.ErrUnavailable)
}

func TestDirectoryJSON_http(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(breweriesJSON))
	}))
	t.Cleanup(srv.Close)

	src := source.NewDirectoryJSON(srv.URL+"/breweries.json", srv.Client())

	got, err := src.Directory(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Brewery A", got[0].Name)
	require.NotNil(t, got[0].Latitude)
	assert.InDelta(t, 37.77, *got[0].Latitude, 1e-9)
	assert.Nil(t, got[1].Latitude)
	assert.True(t, got[1].Closed())

	require.NotNil(t, gotReq)
	assert.Equal(t, "/breweries.json", gotReq.URL.Path)
	assert.NotEmpty(t, gotReq.URL.Query().Get("v"), "cache-busting parameter")
	assert.Contains(t, gotReq.Header.Get("Cache-Control"), "no-cache")
}

func TestDirectoryJSON_httpErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	src := source.NewDirectoryJSON(srv.URL+"/breweries.json", srv.Client())

	_, err := src.Directory(context.Background())

	assert.ErrorIs(t, err, source.ErrUnavailable)
}

func TestVisitJSON_httpOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[" + strings.Repeat(" ", 8<<20) + "]"))
	}))
	t.Cleanup(srv.Close)

	_, err := source.NewVisitJSON(srv.URL+"/data.json", srv.Client()).Visits(context.Background())

	require.ErrorIs(t, err, source.ErrTooLarge)
	assert.NotErrorIs(t, err, source.ErrUnavailable)
	assert.Contains(t, err.Error(), "exceeds")
}
