package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/ports"
)

var testLocations = []entities.Location{
	{ID: 1, Name: "Library", Building: "Main Hall", Floor: 0, Accessible: true},
	{ID: 2, Name: "Chem Lab", Building: "Science", Floor: 2, Accessible: false},
	{ID: 3, Name: "Cafeteria", Building: "Main Hall", Floor: 1, Accessible: true},
}

func TestFilterBySubstring(t *testing.T) {
	t.Run("empty query is a no-op", func(t *testing.T) {
		assert.Equal(t, testLocations, FilterBySubstring(testLocations, ""))
	})

	t.Run("case insensitive across fields", func(t *testing.T) {
		got := FilterBySubstring(testLocations, "MAIN")
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	})

	t.Run("matches numeric and boolean text", func(t *testing.T) {
		got := FilterBySubstring(testLocations, "false")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].ID)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := FilterBySubstring(testLocations, "lab")
		assert.Equal(t, once, FilterBySubstring(once, "lab"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterBySubstring(testLocations, "gym"))
	})
}

func TestFilterByFlag(t *testing.T) {
	got, err := FilterByFlag(testLocations, "accessible", true)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = FilterByFlag(testLocations, "accessible", false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chem Lab", got[0].Name)

	_, err = FilterByFlag(testLocations, "delivered", true)
	assert.True(t, errors.Is(err, entities.ErrInvalidQuery))
}

func TestApplyFilter(t *testing.T) {
	got, err := ApplyFilter(testLocations, ports.ListFilter{
		Query: "main",
		Flags: map[string]bool{"accessible": true},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ApplyFilter([]entities.User{}, ports.ListFilter{Flags: map[string]bool{"accessible": true}})
	assert.True(t, errors.Is(err, entities.ErrInvalidQuery))
}
