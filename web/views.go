package web

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/s0up4200/filmdeck/images"
	"github.com/s0up4200/filmdeck/listing"
	"github.com/s0up4200/filmdeck/search"
	"github.com/s0up4200/filmdeck/tmdb"
)

const (
	castLimit           = 12
	recommendationLimit = 8
	videoLimit          = 4
	excerptLength       = 100
	pagerWidth          = 5
)

// page holds what the layout needs on every page
type page struct {
	Title  string
	Active string
	Query  string
}

type homeView struct {
	page
	Hero           *listing.Item
	TrendingMovies Section[[]listing.Item]
	TrendingTV     Section[[]listing.Item]
	PopularMovies  Section[[]listing.Item]
	PopularTV      Section[[]listing.Item]
	Upcoming       Section[[]listing.Item]
	TopRatedMovies Section[[]listing.Item]
	TopRatedTV     Section[[]listing.Item]
}

type movieView struct {
	page
	Details   Section[*tmdb.MovieDetails]
	Providers Section[[]tmdb.ProviderOffer]
}

func (v movieView) Cast() []tmdb.CastMember {
	if !v.Details.HasData() || v.Details.Data.Credits == nil {
		return nil
	}
	return firstN(v.Details.Data.Credits.Cast, castLimit)
}

func (v movieView) Directors() string {
	if !v.Details.HasData() || v.Details.Data.Credits == nil {
		return ""
	}
	return strings.Join(v.Details.Data.Credits.Directors(), ", ")
}

func (v movieView) Videos() []tmdb.Video {
	if !v.Details.HasData() || v.Details.Data.Videos == nil {
		return nil
	}
	return v.Details.Data.Videos.Featured(videoLimit)
}

func (v movieView) Recommendations() []listing.Item {
	if !v.Details.HasData() || v.Details.Data.Recommendations == nil {
		return nil
	}
	return firstN(listing.FromMediaList(v.Details.Data.Recommendations.Results), recommendationLimit)
}

type tvView struct {
	page
	Details   Section[*tmdb.TVDetails]
	Providers Section[[]tmdb.ProviderOffer]
}

func (v tvView) Cast() []tmdb.AggregateCastMember {
	if !v.Details.HasData() || v.Details.Data.AggregateCredits == nil {
		return nil
	}
	return firstN(v.Details.Data.AggregateCredits.Cast, castLimit)
}

func (v tvView) Videos() []tmdb.Video {
	if !v.Details.HasData() || v.Details.Data.Videos == nil {
		return nil
	}
	return v.Details.Data.Videos.Featured(videoLimit)
}

func (v tvView) Recommendations() []listing.Item {
	if !v.Details.HasData() || v.Details.Data.Recommendations == nil {
		return nil
	}
	return firstN(listing.FromMediaList(v.Details.Data.Recommendations.Results), recommendationLimit)
}

func (v tvView) Keywords() []tmdb.Keyword {
	if !v.Details.HasData() || v.Details.Data.Keywords == nil {
		return nil
	}
	return v.Details.Data.Keywords.Results
}

type seasonView struct {
	page
	TVID   int
	Season Section[*tmdb.Season]
}

type episodeView struct {
	page
	TVID    int
	Episode Section[*tmdb.Episode]
}

func (v episodeView) Cast() []tmdb.CastMember {
	if !v.Episode.HasData() || v.Episode.Data.Credits == nil {
		return nil
	}
	return firstN(v.Episode.Data.Credits.Cast, castLimit)
}

// filmography is one tab of a person's credits with its own pager
type filmography struct {
	Tab   string
	Label string
	Total int
	Items []listing.Item
	Pager pagination
}

type personView struct {
	page
	Details     Section[*tmdb.PersonDetails]
	Credits     Section[*tmdb.CombinedCredits]
	Tab         string
	Filmography []filmography
}

// Selected returns the filmography of the active tab
func (v personView) Selected() *filmography {
	for i := range v.Filmography {
		if v.Filmography[i].Tab == v.Tab {
			return &v.Filmography[i]
		}
	}
	return nil
}

// column is a sortable table header
type column struct {
	Key    string
	Label  string
	URL    string
	Marker string
}

type searchTab struct {
	Tab    search.Tab
	Label  string
	Count  int
	URL    string
	Active bool
}

type searchView struct {
	page
	Tab     search.Tab
	Tabs    []searchTab
	Counts  Section[search.Counts]
	Results Section[[]listing.Item]
	Columns []column
	Pager   pagination
}

func (v searchView) People() bool {
	return v.Tab == search.TabPeople
}

type listView struct {
	page
	Heading string
	Results Section[[]listing.Item]
	Columns []column
	Pager   pagination
}

type errorView struct {
	page
	Status  int
	Message string
}

// pagination renders a pager as links that keep the other query values
type pagination struct {
	listing.Pager
	Path  string
	Param string
	Query url.Values
}

func newPagination(pager listing.Pager, path, param string, query url.Values) pagination {
	return pagination{Pager: pager, Path: path, Param: param, Query: query}
}

// URL links to page n
func (p pagination) URL(n int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	q.Set(p.Param, strconv.Itoa(n))
	return p.Path + "?" + q.Encode()
}

// Pages returns the page numbers shown around the current page
func (p pagination) Pages() []int {
	return p.Window(pagerWidth)
}

// sortColumns builds header links that toggle the sort on each key
func sortColumns(path string, query url.Values, current listing.SortConfig, first listing.Direction, labels [][2]string) []column {
	columns := make([]column, 0, len(labels))
	for _, l := range labels {
		next := listing.Toggle(current, l[0], first)
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("sort", next.Key)
		q.Set("dir", string(next.Direction))

		col := column{Key: l[0], Label: l[1], URL: path + "?" + q.Encode()}
		if current.Key == l[0] {
			col.Marker = "▲"
			if current.Direction == listing.Desc {
				col.Marker = "▼"
			}
		}
		columns = append(columns, col)
	}
	return columns
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// imageView is what the image partial renders
type imageView struct {
	images.Image
	Alt   string
	Class string
}

var imageKinds = map[string]images.Kind{
	"poster":   images.Poster,
	"backdrop": images.Backdrop,
	"profile":  images.Profile,
	"still":    images.Still,
	"logo":     images.Logo,
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"img": func(kind, path, size, alt string) imageView {
			return imageView{Image: s.resolver.Image(imageKinds[kind], path, size), Alt: alt, Class: kind}
		},
		"itemImg": func(item listing.Item, size string) imageView {
			kind := images.Poster
			if item.Kind == tmdb.MediaTypePerson {
				kind = images.Profile
			}
			return imageView{Image: s.resolver.Image(kind, item.ImagePath, size), Alt: item.Title, Class: kind.String()}
		},
		"carousel": func(title, more string, section Section[[]listing.Item]) carousel {
			return carousel{Title: title, More: more, Section: section}
		},
		"runtime": tmdb.FormatRuntime,
		"genres": func(genres []tmdb.Genre) string {
			names := make([]string, 0, len(genres))
			for _, g := range genres {
				names = append(names, g.Name)
			}
			return strings.Join(names, ", ")
		},
		"rating": func(average float64) string {
			if average == 0 {
				return "N/A"
			}
			return fmt.Sprintf("%.1f", average)
		},
		"excerpt": func(item listing.Item) string {
			return item.Excerpt(excerptLength)
		},
		"year": tmdb.ParseYear,
	}
}

// carousel is a titled horizontal row of cards on the home page
type carousel struct {
	Title   string
	More    string
	Section Section[[]listing.Item]
}
