package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/filmdeck/resource"
	"github.com/s0up4200/filmdeck/tmdb"
)

func newSearchServer(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient("test-key", zerolog.Nop(), tmdb.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestCountsIssuesThreeRequests(t *testing.T) {
	var mu sync.Mutex
	paths := map[string]int{}

	client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "batman", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		mu.Lock()
		paths[r.URL.Path]++
		mu.Unlock()

		switch r.URL.Path {
		case "/search/movie":
			w.Write([]byte(`{"page": 1, "results": [], "total_pages": 9, "total_results": 172}`))
		case "/search/tv":
			w.Write([]byte(`{"page": 1, "results": [], "total_pages": 2, "total_results": 31}`))
		case "/search/person":
			w.Write([]byte(`{"page": 1, "results": [], "total_pages": 1, "total_results": 4}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	svc := NewService(client, false, zerolog.Nop())

	// The active tab has no bearing on the counts
	session := NewSession("batman")
	session.SwitchTab(TabPeople)

	counts, err := svc.Counts(context.Background(), session.Query)
	require.NoError(t, err)
	assert.Equal(t, Counts{Movies: 172, TV: 31, People: 4}, counts)
	assert.Equal(t, 31, counts.For(TabTV))
	assert.Equal(t, map[string]int{"/search/movie": 1, "/search/tv": 1, "/search/person": 1}, paths)
}

func TestCountsPartialFailure(t *testing.T) {
	client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/tv" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"page": 1, "results": [], "total_results": 7}`))
	})

	counts, err := NewService(client, false, zerolog.Nop()).Counts(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, Counts{Movies: 7, TV: 0, People: 7}, counts)
}

func TestCountsAllFail(t *testing.T) {
	client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_code": 7, "status_message": "Invalid API key"}`))
	})

	counts, err := NewService(client, false, zerolog.Nop()).Counts(context.Background(), "dune")
	require.Error(t, err)
	assert.ErrorIs(t, err, tmdb.ErrUnauthorized)
	assert.Equal(t, Counts{}, counts)
}

func TestCountsEmptyQuery(t *testing.T) {
	var calls atomic.Int32
	client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	counts, err := NewService(client, false, zerolog.Nop()).Counts(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetcherPerTab(t *testing.T) {
	client := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_adult"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page": 2, "results": [{"id": 1, "name": "` + r.URL.Path + `"}], "total_results": 40}`))
	})
	svc := NewService(client, true, zerolog.Nop())
	assert.True(t, svc.IncludeAdult())

	session := NewSession("batman")
	session.SetPage(2)

	tests := []struct {
		tab  Tab
		path string
	}{
		{TabMovies, "/search/movie"},
		{TabTV, "/search/tv"},
		{TabPeople, "/search/person"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			r := resource.New(svc.Fetcher(tt.tab), session.Params(svc.IncludeAdult()), zerolog.Nop(), resource.WithAutoFetch(false))
			state, err := r.Load(context.Background(), session.Params(svc.IncludeAdult()))
			require.NoError(t, err)
			require.True(t, state.HasData())
			assert.Equal(t, tt.path, state.Data.Results[0].Name)
		})
	}
}

func TestSession(t *testing.T) {
	s := NewSession("  batman ")
	assert.Equal(t, Session{Query: "batman", Tab: TabMovies, Page: 1}, s)

	s.SetPage(4)
	assert.Equal(t, 4, s.Page)
	s.SwitchTab(TabTV)
	assert.Equal(t, TabTV, s.Tab)
	assert.Equal(t, 1, s.Page)

	s.SetPage(-3)
	assert.Equal(t, 1, s.Page)

	s.SetPage(3)
	s.SetQuery("joker")
	assert.Equal(t, "joker", s.Query)
	assert.Equal(t, 1, s.Page)

	assert.Equal(t, tmdb.SearchParams{Query: "joker", Page: 1, IncludeAdult: false}, s.Params(false))
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		input   string
		want    Tab
		wantErr bool
	}{
		{"", TabMovies, false},
		{"movies", TabMovies, false},
		{"TV", TabTV, false},
		{" people ", TabPeople, false},
		{"collections", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTab(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "TV Shows", TabTV.Label())
	assert.Equal(t, "People", TabPeople.Label())
	assert.Equal(t, "Movies", TabMovies.Label())
}
