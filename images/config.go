package images

import (
	"slices"

	"github.com/s0up4200/filmdeck/tmdb"
)

// Image sizes used by the views. Sizes are passed through verbatim and are
// not checked against the configuration's supported lists.
const (
	SizeW92      = "w92"
	SizeW185     = "w185"
	SizeW300     = "w300"
	SizeW342     = "w342"
	SizeW500     = "w500"
	SizeW780     = "w780"
	SizeOriginal = "original"
)

// Config is an immutable snapshot of the image-serving configuration
type Config struct {
	imageBaseURL  string
	posterSizes   []string
	backdropSizes []string
	profileSizes  []string
	stillSizes    []string
	logoSizes     []string
}

// NewConfig snapshots the images block of an API configuration response.
// The secure (https) base URL is used.
func NewConfig(cfg *tmdb.Configuration) *Config {
	if cfg == nil {
		return nil
	}
	images := cfg.Images
	return &Config{
		imageBaseURL:  images.SecureBaseURL,
		posterSizes:   slices.Clone(images.PosterSizes),
		backdropSizes: slices.Clone(images.BackdropSizes),
		profileSizes:  slices.Clone(images.ProfileSizes),
		stillSizes:    slices.Clone(images.StillSizes),
		logoSizes:     slices.Clone(images.LogoSizes),
	}
}

// ImageBaseURL returns the base URL images are served from
func (c *Config) ImageBaseURL() string {
	return c.imageBaseURL
}

// Sizes returns a copy of the supported sizes for a kind of image
func (c *Config) Sizes(kind Kind) []string {
	switch kind {
	case Poster:
		return slices.Clone(c.posterSizes)
	case Backdrop:
		return slices.Clone(c.backdropSizes)
	case Profile:
		return slices.Clone(c.profileSizes)
	case Still:
		return slices.Clone(c.stillSizes)
	case Logo:
		return slices.Clone(c.logoSizes)
	default:
		return nil
	}
}

// Supports reports whether size is listed for kind. ResolveImageURL does not
// consult it.
func (c *Config) Supports(kind Kind, size string) bool {
	return slices.Contains(c.Sizes(kind), size)
}
