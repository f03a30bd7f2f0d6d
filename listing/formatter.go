package listing

import (
	"fmt"
	"strings"

	"github.com/s0up4200/filmdeck/tmdb"
)

const (
	branch     = "├"
	lastBranch = "╰"
	pipe       = "│"
)

// ConsoleFormatter renders listings and details as text trees
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatList formats one page of items
func (f *ConsoleFormatter) FormatList(heading string, items []Item, pager Pager) string {
	if len(items) == 0 {
		return "No results found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (page %d of %d):\n\n", heading, pager.Page, pager.TotalPages)

	for i, item := range items {
		isLast := i == len(items)-1
		f.formatItem(&sb, item, isLast)
		if !isLast {
			sb.WriteString(pipe + "\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatItem(sb *strings.Builder, item Item, isLast bool) {
	prefix, indent := treeParts(isLast)

	fmt.Fprintf(sb, "%s── %s", prefix, item.Title)
	if item.Year > 0 {
		fmt.Fprintf(sb, " (%d)", item.Year)
	}
	fmt.Fprintf(sb, " [%s #%d]\n", item.Kind, item.ID)

	var parts []string
	if item.Rating > 0 {
		parts = append(parts, fmt.Sprintf("Rating: %.1f", item.Rating))
	}
	if item.Kind == tmdb.MediaTypePerson && item.Department != "" {
		parts = append(parts, "Department: "+item.Department)
	}
	if item.Role != "" {
		parts = append(parts, "Role: "+item.Role)
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	if item.KnownFor != "" {
		fmt.Fprintf(sb, "%sKnown for: %s\n", indent, item.KnownFor)
	}
	if item.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, item.Excerpt(100))
	}
}

// FormatMovie formats movie details with one region's watch providers, if any
func (f *ConsoleFormatter) FormatMovie(m *tmdb.MovieDetails, providers *tmdb.RegionProviders) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", m.Title)
	if year := m.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	sb.WriteString("\n")
	if m.Tagline != "" {
		fmt.Fprintf(&sb, "%q\n", m.Tagline)
	}
	sb.WriteString("\n")

	fields := [][2]string{
		{"Released", m.ReleaseDate},
		{"Runtime", m.RuntimeText()},
		{"Rating", formatRating(m.VoteAverage, m.VoteCount)},
		{"Genres", genreNames(m.Genres)},
	}
	if m.Credits != nil {
		fields = append(fields, [2]string{"Director", strings.Join(m.Credits.Directors(), ", ")})
	}
	writeFields(&sb, fields)

	if m.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Overview)
	}

	if m.Credits != nil && len(m.Credits.Cast) > 0 {
		sb.WriteString("\nCast:\n")
		cast := m.Credits.Cast[:min(10, len(m.Credits.Cast))]
		for i, member := range cast {
			prefix, _ := treeParts(i == len(cast)-1)
			fmt.Fprintf(&sb, "%s── %s as %s\n", prefix, member.Name, member.Character)
		}
	}

	if m.Videos != nil {
		writeVideos(&sb, m.Videos.Featured(4))
	}
	writeProviders(&sb, providers)

	sb.WriteString("\n")
	return sb.String()
}

// FormatTV formats TV show details with one region's watch providers, if any
func (f *ConsoleFormatter) FormatTV(t *tmdb.TVDetails, providers *tmdb.RegionProviders) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s", t.Name)
	if year := t.Year(); year > 0 {
		fmt.Fprintf(&sb, " (%d)", year)
	}
	sb.WriteString("\n\n")

	writeFields(&sb, [][2]string{
		{"First aired", t.FirstAirDate},
		{"Status", t.Status},
		{"Seasons", fmt.Sprintf("%d (%d episodes)", t.NumberOfSeasons, t.NumberOfEpisodes)},
		{"Rating", formatRating(t.VoteAverage, t.VoteCount)},
		{"Genres", genreNames(t.Genres)},
	})

	if t.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", t.Overview)
	}

	if len(t.Seasons) > 0 {
		sb.WriteString("\nSeasons:\n")
		for i, season := range t.Seasons {
			prefix, _ := treeParts(i == len(t.Seasons)-1)
			fmt.Fprintf(&sb, "%s── %s (%d episodes)", prefix, season.Name, season.EpisodeCount)
			if season.AirDate != "" {
				fmt.Fprintf(&sb, " %s", season.AirDate)
			}
			sb.WriteString("\n")
		}
	}

	if t.AggregateCredits != nil && len(t.AggregateCredits.Cast) > 0 {
		sb.WriteString("\nCast:\n")
		cast := t.AggregateCredits.Cast[:min(10, len(t.AggregateCredits.Cast))]
		for i, member := range cast {
			prefix, _ := treeParts(i == len(cast)-1)
			fmt.Fprintf(&sb, "%s── %s as %s (%d episodes)\n", prefix, member.Name, member.Characters(), member.TotalEpisodeCount)
		}
	}

	if t.Videos != nil {
		writeVideos(&sb, t.Videos.Featured(4))
	}
	writeProviders(&sb, providers)

	sb.WriteString("\n")
	return sb.String()
}

// FormatSeason formats a season with its episode list
func (f *ConsoleFormatter) FormatSeason(s *tmdb.Season) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n\n", s.Name)
	writeFields(&sb, [][2]string{
		{"Air date", s.AirDate},
		{"Episodes", fmt.Sprint(len(s.Episodes))},
	})
	if s.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", s.Overview)
	}

	if len(s.Episodes) > 0 {
		sb.WriteString("\n")
		for i, ep := range s.Episodes {
			isLast := i == len(s.Episodes)-1
			prefix, indent := treeParts(isLast)
			fmt.Fprintf(&sb, "%s── E%02d %s\n", prefix, ep.EpisodeNumber, ep.Name)
			var parts []string
			if ep.AirDate != "" {
				parts = append(parts, ep.AirDate)
			}
			if ep.Runtime > 0 {
				parts = append(parts, fmt.Sprintf("%dm", ep.Runtime))
			}
			if ep.VoteAverage > 0 {
				parts = append(parts, fmt.Sprintf("Rating: %.1f", ep.VoteAverage))
			}
			if len(parts) > 0 {
				fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
			}
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatEpisode formats a single episode with its guest stars
func (f *ConsoleFormatter) FormatEpisode(e *tmdb.Episode) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nS%02dE%02d %s\n\n", e.SeasonNumber, e.EpisodeNumber, e.Name)
	writeFields(&sb, [][2]string{
		{"Air date", e.AirDate},
		{"Runtime", tmdb.FormatRuntime(e.Runtime)},
		{"Rating", formatRating(e.VoteAverage, e.VoteCount)},
	})
	if e.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", e.Overview)
	}

	if len(e.GuestStars) > 0 {
		sb.WriteString("\nGuest stars:\n")
		for i, member := range e.GuestStars {
			prefix, _ := treeParts(i == len(e.GuestStars)-1)
			fmt.Fprintf(&sb, "%s── %s as %s\n", prefix, member.Name, member.Character)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatPerson formats a person with one page of their filmography
func (f *ConsoleFormatter) FormatPerson(p *tmdb.PersonDetails, filmography []Item, pager Pager) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n\n", p.Name)
	writeFields(&sb, [][2]string{
		{"Known for", p.KnownForDepartment},
		{"Born", strings.TrimSpace(p.Birthday + " " + p.PlaceOfBirth)},
		{"Died", p.Deathday},
	})
	if p.Biography != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.Biography)
	}

	if len(filmography) > 0 {
		sb.WriteString(f.FormatList("Filmography", filmography, pager))
		return sb.String()
	}

	sb.WriteString("\n")
	return sb.String()
}

func treeParts(isLast bool) (prefix, indent string) {
	if isLast {
		return lastBranch, "    "
	}
	return branch, pipe + "   "
}

func writeFields(sb *strings.Builder, fields [][2]string) {
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		fmt.Fprintf(sb, "%-12s %s\n", field[0]+":", field[1])
	}
}

func writeVideos(sb *strings.Builder, videos []tmdb.Video) {
	if len(videos) == 0 {
		return
	}
	sb.WriteString("\nVideos:\n")
	for i, video := range videos {
		prefix, _ := treeParts(i == len(videos)-1)
		fmt.Fprintf(sb, "%s── %s (%s) https://www.youtube.com/watch?v=%s\n", prefix, video.Name, video.Type, video.Key)
	}
}

func writeProviders(sb *strings.Builder, providers *tmdb.RegionProviders) {
	var offers []tmdb.ProviderOffer
	if providers != nil {
		offers = providers.Offers()
	}
	if len(offers) == 0 {
		sb.WriteString("\nWhere to watch: Not available\n")
		return
	}
	sb.WriteString("\nWhere to watch:\n")
	for i, offer := range offers {
		prefix, _ := treeParts(i == len(offers)-1)
		fmt.Fprintf(sb, "%s── %s (%s)\n", prefix, offer.Name, offer.Type)
	}
}

func formatRating(average float64, count int) string {
	if average == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f/10 (%d votes)", average, count)
}

func genreNames(genres []tmdb.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}
