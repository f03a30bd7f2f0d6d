package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Sort keys
const (
	KeyTitle      = "title"
	KeyYear       = "year"
	KeyRating     = "rating"
	KeyMediaType  = "media_type"
	KeyOverview   = "overview"
	KeyPopularity = "popularity"
	KeyDepartment = "department"
	KeyKnownFor   = "known_for"
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortConfig selects a sort key and direction. An empty Key keeps API order.
type SortConfig struct {
	Key       string
	Direction Direction
}

var comparators = map[string]func(a, b Item) int{
	KeyTitle:      func(a, b Item) int { return compareFold(a.Title, b.Title) },
	KeyYear:       func(a, b Item) int { return cmp.Compare(a.Year, b.Year) },
	KeyRating:     func(a, b Item) int { return cmp.Compare(a.Rating, b.Rating) },
	KeyMediaType:  func(a, b Item) int { return compareFold(a.Kind, b.Kind) },
	KeyOverview:   func(a, b Item) int { return compareFold(a.Overview, b.Overview) },
	KeyPopularity: func(a, b Item) int { return cmp.Compare(a.Popularity, b.Popularity) },
	KeyDepartment: func(a, b Item) int { return compareFold(a.Department, b.Department) },
	KeyKnownFor:   func(a, b Item) int { return compareFold(a.KnownFor, b.KnownFor) },
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ValidKey reports whether key is a known sort key
func ValidKey(key string) bool {
	_, ok := comparators[key]
	return ok
}

// Keys returns the known sort keys in alphabetical order
func Keys() []string {
	keys := make([]string, 0, len(comparators))
	for k := range comparators {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseSort parses "key" or "key:asc|desc". The direction defaults to asc.
func ParseSort(s string) (SortConfig, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortConfig{}, nil
	}

	key, dir, hasDir := strings.Cut(s, ":")
	key = strings.ToLower(strings.TrimSpace(key))
	if !ValidKey(key) {
		return SortConfig{}, fmt.Errorf("unknown sort key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	cfg := SortConfig{Key: key, Direction: Asc}
	if hasDir {
		switch Direction(strings.ToLower(strings.TrimSpace(dir))) {
		case Asc:
		case Desc:
			cfg.Direction = Desc
		default:
			return SortConfig{}, fmt.Errorf("unknown sort direction %q (valid: asc, desc)", dir)
		}
	}
	return cfg, nil
}

// String formats the config as accepted by ParseSort
func (c SortConfig) String() string {
	if c.Key == "" {
		return ""
	}
	return c.Key + ":" + string(c.Direction)
}

// Toggle applies a click on a column header: the same key flips direction,
// a new key starts in the first direction.
func Toggle(current SortConfig, key string, first Direction) SortConfig {
	if current.Key == key {
		return SortConfig{Key: key, Direction: current.Direction.Flip()}
	}
	return SortConfig{Key: key, Direction: first}
}

// Sort returns a sorted copy of items. The input is never modified and
// items with equal keys keep their relative order.
func Sort(items []Item, cfg SortConfig) []Item {
	sorted := slices.Clone(items)
	compare, ok := comparators[cfg.Key]
	if !ok {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b Item) int {
		if cfg.Direction == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
