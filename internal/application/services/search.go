package services

import (
	"fmt"
	"strings"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/ports"
)

// FilterBySubstring keeps records whose stringified fields contain query,
// ignoring case. An empty query returns records unchanged.
func FilterBySubstring[T entities.Record[T]](records []T, query string) []T {
	if query == "" {
		return records
	}

	needle := strings.ToLower(query)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.SearchText()), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByFlag keeps records whose named boolean field equals value
func FilterByFlag[T entities.Record[T]](records []T, flag string, value bool) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, r := range records {
		v, ok := r.Flag(flag)
		if !ok {
			return nil, fmt.Errorf("unknown filter %q: %w", flag, entities.ErrInvalidQuery)
		}
		if v == value {
			out = append(out, r)
		}
	}
	return out, nil
}

// ApplyFilter runs every flag filter, then the substring search
func ApplyFilter[T entities.Record[T]](records []T, filter ports.ListFilter) ([]T, error) {
	var zero T
	for flag, value := range filter.Flags {
		// Checked up front so an empty table still rejects unknown flags.
		if _, ok := zero.Flag(flag); !ok {
			return nil, fmt.Errorf("unknown filter %q: %w", flag, entities.ErrInvalidQuery)
		}

		var err error
		records, err = FilterByFlag(records, flag, value)
		if err != nil {
			return nil, err
		}
	}
	return FilterBySubstring(records, filter.Query), nil
}
