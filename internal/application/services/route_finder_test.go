package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusnav/core/internal/adapters/repository"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

var testRoutes = []entities.Route{
	{ID: 1, StartLocation: "A", EndLocation: "B", DistanceM: 50, Accessible: true},
	{ID: 2, StartLocation: "A", EndLocation: "B", DistanceM: 30, Accessible: false},
}

func TestFindRoutes(t *testing.T) {
	tests := []struct {
		name           string
		routes         []entities.Route
		start, end     string
		accessibleOnly bool
		wantIDs        []int
		wantBest       int
	}{
		{name: "shortest wins", routes: testRoutes, start: "A", end: "B", wantIDs: []int{1, 2}, wantBest: 2},
		{name: "accessible only", routes: testRoutes, start: "A", end: "B", accessibleOnly: true, wantIDs: []int{1}, wantBest: 1},
		{name: "no match", routes: testRoutes, start: "A", end: "Z", wantIDs: []int{}},
		{name: "direction matters", routes: testRoutes, start: "B", end: "A", wantIDs: []int{}},
		{name: "case sensitive", routes: testRoutes, start: "a", end: "b", wantIDs: []int{}},
		{name: "no trimming", routes: testRoutes, start: "A ", end: "B", wantIDs: []int{}},
		{
			name: "tie goes to first",
			routes: []entities.Route{
				{ID: 5, StartLocation: "A", EndLocation: "B", DistanceM: 10},
				{ID: 3, StartLocation: "A", EndLocation: "B", DistanceM: 10},
			},
			start: "A", end: "B", wantIDs: []int{5, 3}, wantBest: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindRoutes(tt.routes, tt.start, tt.end, tt.accessibleOnly)

			ids := []int{}
			for _, r := range result.All {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			if tt.wantBest == 0 {
				assert.Nil(t, result.Best)
				return
			}
			require.NotNil(t, result.Best)
			assert.Equal(t, tt.wantBest, result.Best.ID)
		})
	}
}

func TestRouteFinder(t *testing.T) {
	ctx := context.Background()

	t.Run("finds routes", func(t *testing.T) {
		finder := NewRouteFinder(repository.NewMemoryStore(testRoutes...), logger.NewNop())

		result, err := finder.Find(ctx, ports.RouteQuery{Start: "A", End: "B"})
		require.NoError(t, err)
		require.NotNil(t, result.Best)
		assert.Equal(t, 2, result.Best.ID)
	})

	t.Run("missing start or end is checked before loading", func(t *testing.T) {
		store := repository.NewMemoryStore(testRoutes...)
		store.LoadErr = errors.New("must not load")
		finder := NewRouteFinder(store, logger.NewNop())

		_, err := finder.Find(ctx, ports.RouteQuery{Start: "A"})
		assert.True(t, errors.Is(err, entities.ErrInvalidQuery))

		_, err = finder.Find(ctx, ports.RouteQuery{End: "B"})
		assert.True(t, errors.Is(err, entities.ErrInvalidQuery))
	})

	t.Run("unreadable store", func(t *testing.T) {
		store := repository.NewMemoryStore[entities.Route]()
		store.LoadErr = errors.New("permission denied")
		finder := NewRouteFinder(store, logger.NewNop())

		_, err := finder.Find(ctx, ports.RouteQuery{Start: "A", End: "B"})
		assert.True(t, errors.Is(err, entities.ErrStoreUnavailable))
	})

	t.Run("endpoints", func(t *testing.T) {
		finder := NewRouteFinder(repository.NewMemoryStore(
			entities.Route{ID: 1, StartLocation: "Library", EndLocation: "Cafe"},
			entities.Route{ID: 2, StartLocation: "Cafe", EndLocation: "Gym"},
		), logger.NewNop())

		names, err := finder.Endpoints(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cafe", "Gym", "Library"}, names)
	})
}
