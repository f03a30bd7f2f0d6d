package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/filmdeck/config"
	"github.com/s0up4200/filmdeck/filter"
	"github.com/s0up4200/filmdeck/tmdb"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		lowest  int
		want    int
		wantErr bool
	}{
		{name: "valid id", raw: "603", lowest: 1, want: 603},
		{name: "specials season", raw: "0", lowest: 0, want: 0},
		{name: "zero id", raw: "0", lowest: 1, wantErr: true},
		{name: "negative", raw: "-3", lowest: 0, wantErr: true},
		{name: "not a number", raw: "abc", lowest: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID("id", tt.raw, tt.lowest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	page, err := load(ctx, "ok", func(ctx context.Context, p tmdb.PageParams) (*tmdb.Page[tmdb.MediaItem], error) {
		return &tmdb.Page[tmdb.MediaItem]{Page: p.Page, TotalPages: 3}, nil
	}, tmdb.PageParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)

	boom := errors.New("boom")
	page, err = load(ctx, "failing", func(ctx context.Context, p tmdb.PageParams) (*tmdb.Page[tmdb.MediaItem], error) {
		return nil, boom
	}, tmdb.PageParams{Page: 1})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, page)
}

func TestPreparePage(t *testing.T) {
	cfg = &config.Config{Listing: config.ListingConfig{PageSize: 20, MaxPages: 500}}
	filters = filter.NewManager()
	t.Cleanup(func() {
		cfg, filters = nil, nil
		sortFlag, filterExpr, preset = "", "", ""
	})

	page := &tmdb.Page[tmdb.MediaItem]{
		Page:       3,
		TotalPages: 900,
		Results: []tmdb.MediaItem{
			{ID: 1, MediaType: tmdb.MediaTypeMovie, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1},
			{ID: 2, MediaType: tmdb.MediaTypeMovie, Title: "Aliens", ReleaseDate: "1986-07-18", VoteAverage: 7.9},
			{ID: 3, MediaType: tmdb.MediaTypeTV, Name: "Alien Nation", FirstAirDate: "1989-09-18", VoteAverage: 6.8},
		},
	}

	sortFlag = "rating:asc"
	filterExpr = "Kind == 'movie'"
	items, pager, err := preparePage(page)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Aliens", items[0].Title)
	assert.Equal(t, "Alien", items[1].Title)
	assert.Equal(t, 3, pager.Page)
	assert.Equal(t, 500, pager.TotalPages)

	sortFlag = "budget"
	_, _, err = preparePage(page)
	assert.Error(t, err)

	sortFlag = ""
	filterExpr = ""
	preset = "missing"
	_, _, err = preparePage(page)
	assert.ErrorContains(t, err, "not found")
}
