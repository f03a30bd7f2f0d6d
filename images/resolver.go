package images

// Kind is the role an image plays, which decides its placeholder
type Kind int

const (
	Poster Kind = iota
	Backdrop
	Profile
	Still
	Logo
)

// Placeholder assets served from the web package's static files
const (
	PlaceholderPoster = "/static/placeholder-poster.svg"
	PlaceholderPerson = "/static/placeholder-person.svg"
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Poster:
		return "poster"
	case Backdrop:
		return "backdrop"
	case Profile:
		return "profile"
	case Still:
		return "still"
	case Logo:
		return "logo"
	default:
		return "unknown"
	}
}

// PlaceholderFor returns the local asset shown for kind when there is no image
func PlaceholderFor(kind Kind) string {
	if kind == Profile {
		return PlaceholderPerson
	}
	return PlaceholderPoster
}

// Image is a resolved image reference for a view
type Image struct {
	URL string
	// Placeholder is set when URL points at a local placeholder asset
	Placeholder bool
	// Unavailable is set when the configuration failed to load; views show text instead
	Unavailable bool
}

// Source exposes the configuration status
type Source interface {
	Snapshot() Status
}

// Resolver applies one fallback policy for every image in the UI
type Resolver struct {
	source Source
}

// NewResolver creates a resolver over a configuration source
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Image resolves path at size for kind. A failed configuration load yields
// Unavailable; a missing path or a pending load yields the kind's placeholder.
func (r *Resolver) Image(kind Kind, path, size string) Image {
	status := r.source.Snapshot()

	switch {
	case status.Err != nil:
		return Image{Unavailable: true}
	case path == "", status.Loading, status.Config == nil, status.Config.ImageBaseURL() == "":
		return Image{URL: PlaceholderFor(kind), Placeholder: true}
	}

	if size == "" {
		size = SizeOriginal
	}
	return Image{URL: status.Config.ImageBaseURL() + size + path}
}

// URL is Image(kind, path, size).URL, empty when the configuration is unavailable
func (r *Resolver) URL(kind Kind, path, size string) string {
	return r.Image(kind, path, size).URL
}
