// Package search drives the tabbed movie/TV/people search.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/filmdeck/resource"
	"github.com/s0up4200/filmdeck/tmdb"
)

// Tab is one of the search result tabs
type Tab string

const (
	TabMovies Tab = "movies"
	TabTV     Tab = "tv"
	TabPeople Tab = "people"
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabMovies, TabTV, TabPeople}

// ParseTab parses a tab name; empty defaults to movies
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabMovies:
		return TabMovies, nil
	case TabTV:
		return TabTV, nil
	case TabPeople:
		return TabPeople, nil
	default:
		return "", fmt.Errorf("unknown search tab %q (valid: movies, tv, people)", s)
	}
}

// Label returns the tab's display name
func (t Tab) Label() string {
	switch t {
	case TabTV:
		return "TV Shows"
	case TabPeople:
		return "People"
	default:
		return "Movies"
	}
}

// Session is the page-local state of a search view
type Session struct {
	Query string
	Tab   Tab
	Page  int
}

// NewSession starts a search on the movies tab, page 1
func NewSession(query string) Session {
	return Session{Query: strings.TrimSpace(query), Tab: TabMovies, Page: 1}
}

// SwitchTab selects a tab and goes back to page 1
func (s *Session) SwitchTab(tab Tab) {
	s.Tab = tab
	s.Page = 1
}

// SetPage moves to page n, clamped to at least 1
func (s *Session) SetPage(n int) {
	s.Page = max(1, n)
}

// SetQuery replaces the query and goes back to page 1
func (s *Session) SetQuery(q string) {
	s.Query = strings.TrimSpace(q)
	s.Page = 1
}

// Params returns the request for the session's active tab
func (s Session) Params(includeAdult bool) tmdb.SearchParams {
	return tmdb.SearchParams{Query: s.Query, Page: max(1, s.Page), IncludeAdult: includeAdult}
}

// Counts holds total_results per tab
type Counts struct {
	Movies int
	TV     int
	People int
}

// For returns the count for a tab
func (c Counts) For(tab Tab) int {
	switch tab {
	case TabTV:
		return c.TV
	case TabPeople:
		return c.People
	default:
		return c.Movies
	}
}

// Searcher is the subset of the API client used by search
type Searcher interface {
	SearchMovies(ctx context.Context, p tmdb.SearchParams) (*tmdb.Page[tmdb.MediaItem], error)
	SearchTV(ctx context.Context, p tmdb.SearchParams) (*tmdb.Page[tmdb.MediaItem], error)
	SearchPeople(ctx context.Context, p tmdb.SearchParams) (*tmdb.Page[tmdb.MediaItem], error)
}

// Service runs searches against the API
type Service struct {
	client       Searcher
	includeAdult bool
	logger       zerolog.Logger
}

// NewService creates a search service
func NewService(client Searcher, includeAdult bool, logger zerolog.Logger) *Service {
	return &Service{
		client:       client,
		includeAdult: includeAdult,
		logger:       logger,
	}
}

// Counts requests page 1 of every tab in parallel and returns their totals.
// A failed request leaves its count at zero without affecting the others;
// the error is only returned when all three fail.
func (s *Service) Counts(ctx context.Context, query string) (Counts, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Counts{}, nil
	}

	params := tmdb.SearchParams{Query: query, Page: 1, IncludeAdult: s.includeAdult}
	fetchers := []struct {
		tab   Tab
		fetch resource.Fetcher[tmdb.SearchParams, *tmdb.Page[tmdb.MediaItem]]
	}{
		{TabMovies, s.client.SearchMovies},
		{TabTV, s.client.SearchTV},
		{TabPeople, s.client.SearchPeople},
	}

	totals := make([]int, len(fetchers))
	errs := make([]error, len(fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetchers {
		g.Go(func() error {
			page, err := f.fetch(gctx, params)
			if err != nil {
				s.logger.Warn().Err(err).Str("tab", string(f.tab)).Str("query", query).Msg("Failed to fetch search count")
				errs[i] = err
				return nil
			}
			totals[i] = page.TotalResults
			return nil
		})
	}
	_ = g.Wait()

	counts := Counts{Movies: totals[0], TV: totals[1], People: totals[2]}
	if errs[0] != nil && errs[1] != nil && errs[2] != nil {
		return counts, fmt.Errorf("all search count requests failed: %w", errs[0])
	}
	return counts, nil
}

// Fetcher returns the fetcher for a tab's result list
func (s *Service) Fetcher(tab Tab) resource.Fetcher[tmdb.SearchParams, *tmdb.Page[tmdb.MediaItem]] {
	switch tab {
	case TabTV:
		return s.client.SearchTV
	case TabPeople:
		return s.client.SearchPeople
	default:
		return s.client.SearchMovies
	}
}

// IncludeAdult reports whether searches include adult results
func (s *Service) IncludeAdult() bool {
	return s.includeAdult
}
