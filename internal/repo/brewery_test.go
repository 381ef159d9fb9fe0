package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/thursday-pints/backend/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestBreweryRepo_ReplaceDirectory_KeepsOrder(t *testing.T) {
	_, r := newTestRepos(t)
	ctx := context.Background()

	in := []domain.BreweryLocation{
		{Name: "Zeta Brewing", Address: "9 Last St", Latitude: ptr(37.8), Longitude: ptr(-122.3), Status: domain.StatusOpen},
		{Name: "Alpha Ales", Address: "1 First St", Status: domain.StatusClosed},
	}
	require.NoError(t, r.ReplaceDirectory(ctx, in))

	got, err := r.Directory(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zeta Brewing", got[0].Name, "insertion order, not alphabetical")
	require.NotNil(t, got[0].Latitude)
	assert.InDelta(t, 37.8, *got[0].Latitude, 1e-9)
	assert.Nil(t, got[1].Latitude, "NULL coordinates stay nil")
	assert.True(t, got[1].Closed())
}

func TestBreweryRepo_ReplaceDirectory_Replaces(t *testing.T) {
	_, r := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, r.ReplaceDirectory(ctx, []domain.BreweryLocation{{Name: "Old"}}))
	require.NoError(t, r.ReplaceDirectory(ctx, []domain.BreweryLocation{{Name: "New"}}))

	got, err := r.Directory(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
}
