package tmdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaItemHelpers(t *testing.T) {
	tests := []struct {
		name     string
		item     MediaItem
		wantName string
		wantDate string
		wantYear int
		wantKind string
		wantPath string
	}{
		{
			name:     "movie from trending",
			item:     MediaItem{MediaType: "movie", Title: "Dune", ReleaseDate: "2021-09-15", PosterPath: "/dune.jpg"},
			wantName: "Dune",
			wantDate: "2021-09-15",
			wantYear: 2021,
			wantKind: MediaTypeMovie,
			wantPath: "/dune.jpg",
		},
		{
			name:     "tv without media type",
			item:     MediaItem{Name: "Severance", FirstAirDate: "2022-02-17"},
			wantName: "Severance",
			wantDate: "2022-02-17",
			wantYear: 2022,
			wantKind: MediaTypeTV,
		},
		{
			name:     "movie without media type inferred from release date",
			item:     MediaItem{ReleaseDate: "1999-10-15"},
			wantDate: "1999-10-15",
			wantYear: 1999,
			wantKind: MediaTypeMovie,
		},
		{
			name:     "person from popular list",
			item:     MediaItem{Name: "Zendaya", KnownForDepartment: "Acting", ProfilePath: "/z.jpg"},
			wantName: "Zendaya",
			wantKind: MediaTypePerson,
			wantPath: "/z.jpg",
		},
		{
			name:     "empty item degrades",
			item:     MediaItem{},
			wantKind: MediaTypeTV,
		},
		{
			name:     "malformed date",
			item:     MediaItem{Title: "X", ReleaseDate: "soon"},
			wantName: "X",
			wantDate: "soon",
			wantYear: 0,
			wantKind: MediaTypeMovie,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantName, tt.item.DisplayName())
			assert.Equal(t, tt.wantDate, tt.item.Date())
			assert.Equal(t, tt.wantYear, tt.item.Year())
			assert.Equal(t, tt.wantKind, tt.item.Kind())
			assert.Equal(t, tt.wantPath, tt.item.ImagePath())
		})
	}
}

func TestKnownForTitles(t *testing.T) {
	var person MediaItem
	err := json.Unmarshal([]byte(`{
		"id": 6193,
		"name": "Leonardo DiCaprio",
		"known_for": [
			{"media_type": "movie", "title": "Inception"},
			{"media_type": "tv", "name": "Growing Pains"},
			{"media_type": "movie"}
		]
	}`), &person)
	require.NoError(t, err)

	assert.Equal(t, "Inception, Growing Pains", person.KnownForTitles())
	assert.Equal(t, 0.0, person.Rating())
}

func TestFeaturedVideos(t *testing.T) {
	videos := Videos{Results: []Video{
		{ID: "1", Site: "YouTube", Type: "Teaser", PublishedAt: "2024-01-01T00:00:00.000Z"},
		{ID: "2", Site: "YouTube", Type: "Trailer", Official: true, PublishedAt: "2023-06-01T00:00:00.000Z"},
		{ID: "3", Site: "Vimeo", Type: "Trailer", Official: true, PublishedAt: "2024-05-01T00:00:00.000Z"},
		{ID: "4", Site: "YouTube", Type: "Trailer", Official: true, PublishedAt: "2024-02-01T00:00:00.000Z"},
		{ID: "5", Site: "YouTube", Type: "Trailer", Official: false, PublishedAt: "2024-03-01T00:00:00.000Z"},
		{ID: "6", Site: "YouTube", Type: "Clip", PublishedAt: "2022-01-01T00:00:00.000Z"},
	}}

	ids := func(list []Video) []string {
		out := make([]string, 0, len(list))
		for _, v := range list {
			out = append(out, v.ID)
		}
		return out
	}

	assert.Equal(t, []string{"4", "2", "5", "1"}, ids(videos.Featured(4)))
	assert.Equal(t, []string{"4", "2", "5", "1", "6"}, ids(videos.Featured(0)))
	assert.Empty(t, Videos{}.Featured(4))
}

func TestFormatRuntime(t *testing.T) {
	assert.Equal(t, "N/A", FormatRuntime(0))
	assert.Equal(t, "0h 45m", FormatRuntime(45))
	assert.Equal(t, "2h 0m", FormatRuntime(120))
}
