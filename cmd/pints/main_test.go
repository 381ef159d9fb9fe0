package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddVisit_AddsThenUpdates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "public", "data.json")
	mirror := filepath.Join(dir, "dist", "data.json")

	out, err := run(t, "add-visit",
		"--date", "2024-01-25", "--brewery", "Harbor Hops", "--next-brewery", "Fog City Ferments",
		"--notes", "No response", "--file", file, "--mirror", mirror)
	require.NoError(t, err)
	assert.Contains(t, out, "Added visit: 2024-01-25 - Harbor Hops")

	out, err = run(t, "add-visit",
		"--date", "2024-01-25", "--brewery", "Harbor Hops II", "--next-brewery", "Fog City Ferments",
		"--file", file, "--mirror", mirror)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated visit: 2024-01-25 - Harbor Hops II")

	primary, err := os.ReadFile(file)
	require.NoError(t, err)
	copied, err := os.ReadFile(mirror)
	require.NoError(t, err)
	assert.Equal(t, primary, copied)
	assert.NotContains(t, string(primary), "No response")
}

func TestAddVisit_RejectsMalformedDate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.json")

	_, err := run(t, "add-visit",
		"--date", "01/25/2024", "--brewery", "Harbor Hops", "--next-brewery", "x",
		"--file", file, "--mirror", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
	assert.NoFileExists(t, file)
}

func TestAddVisit_RequiresFlags(t *testing.T) {
	_, err := run(t, "add-visit", "--date", "2024-01-25")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	visits := filepath.Join(dir, "data.json")
	breweries := filepath.Join(dir, "breweries.json")
	require.NoError(t, os.WriteFile(visits, []byte(`[
  {"date": "2024-01-18", "breweryName": "Harbor Hops", "nextBrewery": "fog city ferments"},
  {"date": "2024-01-11", "breweryName": "Anchor Point"},
  {"date": "2024-01-04", "breweryName": "Harbor Hops"}
]`), 0o644))
	require.NoError(t, os.WriteFile(breweries, []byte(`[
  {"brewery_name": "Fog City Ferments", "brewery_address": "1 Mist Ln", "latitude": null, "longitude": null, "status": "Open"}
]`), 0o644))

	out, err := run(t, "stats", "--visits", visits, "--breweries", breweries, "--top", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Breweries toured: 2")
	assert.Contains(t, out, "Total visits:     3")
	assert.Contains(t, out, "1. Harbor Hops")
	assert.Contains(t, out, "Jan 18, 2024")
	assert.NotContains(t, out, "3. ", "top list is capped at --top")
	assert.Contains(t, out, "Next outing (Jan 25, 2024): fog city ferments")
}

func TestImportable(t *testing.T) {
	visits := []domain.Visit{
		{Date: "2024-01-11", BreweryName: "Brewery B", IsClosed: true},
		{Date: "2024-01-11", BreweryName: "Brewery B (typo)"},
		{Date: "not a date", BreweryName: "Brewery C"},
		{Date: "2024-01-04", BreweryName: "  "},
		{Date: "2024-01-04", BreweryName: "Brewery A"},
	}

	kept, malformed, duplicates := importable(visits)

	require.Len(t, kept, 2)
	assert.Equal(t, "Brewery B", kept[0].BreweryName, "first record for a date wins")
	assert.True(t, kept[0].IsClosed)
	assert.Equal(t, "Brewery A", kept[1].BreweryName)
	assert.Equal(t, 2, malformed)
	assert.Equal(t, 1, duplicates)
}
