package images

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/filmdeck/tmdb"
)

type fixedSource Status

func (s fixedSource) Snapshot() Status {
	return Status(s)
}

func TestResolverImage(t *testing.T) {
	loaded := fixedSource{Config: NewConfig(&tmdb.Configuration{
		Images: tmdb.ImagesConfiguration{SecureBaseURL: "https://img.example/"},
	})}
	loading := fixedSource{Loading: true}
	failed := fixedSource{Err: errors.New("config failed")}

	tests := []struct {
		name   string
		source Source
		kind   Kind
		path   string
		size   string
		want   Image
	}{
		{
			name:   "poster",
			source: loaded,
			kind:   Poster,
			path:   "/p.jpg",
			size:   SizeW342,
			want:   Image{URL: "https://img.example/w342/p.jpg"},
		},
		{
			name:   "missing poster",
			source: loaded,
			kind:   Poster,
			size:   SizeW342,
			want:   Image{URL: PlaceholderPoster, Placeholder: true},
		},
		{
			name:   "missing profile",
			source: loaded,
			kind:   Profile,
			size:   SizeW185,
			want:   Image{URL: PlaceholderPerson, Placeholder: true},
		},
		{
			name:   "missing still uses poster placeholder",
			source: loaded,
			kind:   Still,
			want:   Image{URL: PlaceholderPoster, Placeholder: true},
		},
		{
			name:   "loading",
			source: loading,
			kind:   Profile,
			path:   "/face.jpg",
			size:   SizeW92,
			want:   Image{URL: PlaceholderPerson, Placeholder: true},
		},
		{
			name:   "failed config",
			source: failed,
			kind:   Poster,
			path:   "/p.jpg",
			size:   SizeW500,
			want:   Image{Unavailable: true},
		},
		{
			name:   "failed config without path",
			source: failed,
			kind:   Backdrop,
			want:   Image{Unavailable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.source)
			assert.Equal(t, tt.want, r.Image(tt.kind, tt.path, tt.size))
			assert.Equal(t, tt.want.URL, r.URL(tt.kind, tt.path, tt.size))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "poster", Poster.String())
	assert.Equal(t, "profile", Profile.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
