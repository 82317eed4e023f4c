package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// FindRoutes returns every direct route from start to end and the shortest
// one. Names match exactly. Ties on distance go to the earliest route.
func FindRoutes(routes []entities.Route, start, end string, accessibleOnly bool) ports.RouteResult {
	result := ports.RouteResult{All: []entities.Route{}}

	for _, r := range routes {
		if accessibleOnly && !r.Accessible {
			continue
		}
		if r.StartLocation != start || r.EndLocation != end {
			continue
		}
		result.All = append(result.All, r)
	}

	for i := range result.All {
		if result.Best == nil || result.All[i].DistanceM < result.Best.DistanceM {
			result.Best = &result.All[i]
		}
	}

	return result
}

// RouteFinder answers route queries against the route store
type RouteFinder struct {
	routeRepo ports.RouteRepository
	logger    *logger.Logger
}

// NewRouteFinder creates a new route finder
func NewRouteFinder(routeRepo ports.RouteRepository, logger *logger.Logger) *RouteFinder {
	return &RouteFinder{
		routeRepo: routeRepo,
		logger:    logger.WithComponent("route_finder"),
	}
}

// Find validates the query, loads the routes and runs FindRoutes
func (f *RouteFinder) Find(ctx context.Context, q ports.RouteQuery) (*ports.RouteResult, error) {
	if q.Start == "" || q.End == "" {
		return nil, fmt.Errorf("start and end are required: %w", entities.ErrInvalidQuery)
	}

	routes, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	result := FindRoutes(routes, q.Start, q.End, q.AccessibleOnly)
	f.logger.Debugw("Route query answered",
		"start", q.Start,
		"end", q.End,
		"accessible_only", q.AccessibleOnly,
		"matches", len(result.All),
	)

	return &result, nil
}

// Endpoints lists every distinct start or end name, sorted
func (f *RouteFinder) Endpoints(ctx context.Context) ([]string, error) {
	routes, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return RouteEndpoints(routes), nil
}

func (f *RouteFinder) load(ctx context.Context) ([]entities.Route, error) {
	routes, err := f.routeRepo.LoadAll(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, entities.ErrStoreUnavailable) || errors.Is(err, entities.ErrMalformedRecord) {
			return nil, fmt.Errorf("failed to load routes: %w", err)
		}
		return nil, fmt.Errorf("failed to load routes: %v: %w", err, entities.ErrStoreUnavailable)
	}
	return routes, nil
}

// RouteEndpoints returns the sorted set of names used as a route start or end
func RouteEndpoints(routes []entities.Route) []string {
	seen := make(map[string]struct{}, len(routes)*2)
	for _, r := range routes {
		seen[r.StartLocation] = struct{}{}
		seen[r.EndLocation] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
