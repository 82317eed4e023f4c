package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// HistogramBins is the number of equal-width distance bins in a report
const HistogramBins = 5

// AnalyticsService computes the data behind the analytics report
type AnalyticsService struct {
	locationRepo ports.LocationRepository
	routeRepo    ports.RouteRepository
	logger       *logger.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(locationRepo ports.LocationRepository, routeRepo ports.RouteRepository, logger *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		locationRepo: locationRepo,
		routeRepo:    routeRepo,
		logger:       logger.WithComponent("analytics"),
	}
}

// Report loads both stores and summarises them
func (s *AnalyticsService) Report(ctx context.Context) (*ports.AnalyticsReport, error) {
	locations, err := s.locationRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	routes, err := s.routeRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	report := BuildReport(locations, routes)
	s.logger.Debugw("Analytics report built", "locations", report.TotalLocations, "routes", report.TotalRoutes)
	return report, nil
}

// BuildReport summarises locations and routes
func BuildReport(locations []entities.Location, routes []entities.Route) *ports.AnalyticsReport {
	report := &ports.AnalyticsReport{
		TotalLocations:      len(locations),
		TotalRoutes:         len(routes),
		LocationsByBuilding: countByBuilding(locations),
		LocationsByFloor:    countByFloor(locations),
		RouteUsage:          routeUsage(routes),
		Distances:           make([]float64, 0, len(routes)),
	}

	for _, l := range locations {
		if l.Accessible {
			report.AccessibleLocations++
		}
	}
	for _, r := range routes {
		if r.Accessible {
			report.AccessibleRoutes++
		}
		report.Distances = append(report.Distances, r.DistanceM)
	}
	report.DistanceHistogram = Histogram(report.Distances, HistogramBins)

	return report
}

// countByBuilding keeps buildings in order of first appearance
func countByBuilding(locations []entities.Location) []ports.CountEntry {
	out := []ports.CountEntry{}
	index := make(map[string]int)
	for _, l := range locations {
		i, ok := index[l.Building]
		if !ok {
			i = len(out)
			index[l.Building] = i
			out = append(out, ports.CountEntry{Label: l.Building})
		}
		out[i].Count++
	}
	return out
}

func countByFloor(locations []entities.Location) []ports.CountEntry {
	counts := make(map[int]int)
	for _, l := range locations {
		counts[l.Floor]++
	}

	floors := make([]int, 0, len(counts))
	for f := range counts {
		floors = append(floors, f)
	}
	sort.Ints(floors)

	out := make([]ports.CountEntry, 0, len(floors))
	for _, f := range floors {
		out = append(out, ports.CountEntry{Label: strconv.Itoa(f), Count: counts[f]})
	}
	return out
}

// routeUsage counts routes per (start, end) over the sorted endpoint names.
// Counts[i][j] is the number of routes from Locations[i] to Locations[j].
func routeUsage(routes []entities.Route) ports.RouteUsageMatrix {
	names := RouteEndpoints(routes)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	counts := make([][]int, len(names))
	for i := range counts {
		counts[i] = make([]int, len(names))
	}
	for _, r := range routes {
		counts[index[r.StartLocation]][index[r.EndLocation]]++
	}

	return ports.RouteUsageMatrix{Locations: names, Counts: counts}
}

// Histogram splits [min, max] into bins equal-width bins. The last bin
// includes max. A single distinct value is centred in a bin of width one
// around it; no values span [0, 1]. NaN and infinite values are not counted.
func Histogram(values []float64, bins int) []ports.HistogramBin {
	values = finiteValues(values)
	lo, hi := 0.0, 1.0
	if len(values) > 0 {
		lo, hi = values[0], values[0]
		for _, v := range values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
	}

	width := (hi - lo) / float64(bins)
	out := make([]ports.HistogramBin, bins)
	for i := range out {
		out[i].From = lo + float64(i)*width
		out[i].To = lo + float64(i+1)*width
	}
	out[bins-1].To = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
