// Package listing turns API results into view rows and sorts and pages them
// on the client side. Sorting only ever reorders the rows of the page that
// was fetched.
package listing

import (
	"fmt"

	"github.com/s0up4200/filmdeck/tmdb"
)

// Item is one row of a list, table or carousel
type Item struct {
	ID         int
	Kind       string
	Title      string
	Year       int
	Date       string
	Overview   string
	Rating     float64
	Popularity float64
	ImagePath  string
	Backdrop   string
	Department string
	KnownFor   string
	// Role is the character played or the crew job, for filmography rows
	Role         string
	EpisodeCount int
}

// FromMedia builds a row from a list or search result
func FromMedia(m tmdb.MediaItem) Item {
	return Item{
		ID:         m.ID,
		Kind:       m.Kind(),
		Title:      m.DisplayName(),
		Year:       m.Year(),
		Date:       m.Date(),
		Overview:   m.Overview,
		Rating:     m.Rating(),
		Popularity: m.Popularity,
		ImagePath:  m.ImagePath(),
		Backdrop:   m.BackdropPath,
		Department: m.KnownForDepartment,
		KnownFor:   m.KnownForTitles(),
	}
}

// FromMediaList converts results in order
func FromMediaList(results []tmdb.MediaItem) []Item {
	items := make([]Item, 0, len(results))
	for _, m := range results {
		items = append(items, FromMedia(m))
	}
	return items
}

// FromCredit builds a filmography row from a person's credit
func FromCredit(c tmdb.PersonCredit) Item {
	item := FromMedia(c.MediaItem)
	item.Role = c.Role()
	item.Department = c.Department
	item.EpisodeCount = c.EpisodeCount
	return item
}

// FromCredits converts credits in order
func FromCredits(credits []tmdb.PersonCredit) []Item {
	items := make([]Item, 0, len(credits))
	for _, c := range credits {
		items = append(items, FromCredit(c))
	}
	return items
}

// Link returns the UI path for the item
func (i Item) Link() string {
	return fmt.Sprintf("/%s/%d", i.Kind, i.ID)
}

// YearText returns the year, or "" when unknown
func (i Item) YearText() string {
	if i.Year == 0 {
		return ""
	}
	return fmt.Sprint(i.Year)
}

// RatingText formats the rating to one decimal, or "" when unrated
func (i Item) RatingText() string {
	if i.Rating == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", i.Rating)
}

// Excerpt truncates the overview to n runes with an ellipsis
func (i Item) Excerpt(n int) string {
	runes := []rune(i.Overview)
	if n <= 0 || len(runes) <= n {
		return i.Overview
	}
	return string(runes[:n]) + "..."
}

// Filmography returns a person's acting credits of one media type, one row
// per title in credit order
func Filmography(credits *tmdb.CombinedCredits, mediaType string) []Item {
	if credits == nil {
		return nil
	}
	seen := make(map[int]bool, len(credits.Cast))
	var items []Item
	for _, c := range credits.Cast {
		if c.Kind() != mediaType || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		items = append(items, FromCredit(c))
	}
	return items
}
