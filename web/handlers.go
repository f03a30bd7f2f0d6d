package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/filmdeck/listing"
	"github.com/s0up4200/filmdeck/resource"
	"github.com/s0up4200/filmdeck/search"
	"github.com/s0up4200/filmdeck/tmdb"
)

const (
	movieAppend   = "credits,videos,recommendations"
	tvAppend      = "aggregate_credits,videos,recommendations,keywords"
	episodeAppend = "credits"
)

var (
	mediaColumns  = [][2]string{{listing.KeyTitle, "Title"}, {listing.KeyYear, "Year"}, {listing.KeyMediaType, "Type"}, {listing.KeyOverview, "Overview"}, {listing.KeyRating, "Rating"}}
	peopleColumns = [][2]string{{listing.KeyTitle, "Name"}, {listing.KeyKnownFor, "Known For"}, {listing.KeyDepartment, "Department"}, {listing.KeyPopularity, "Popularity"}}
	rankedColumns = [][2]string{{listing.KeyTitle, "Title"}, {listing.KeyYear, "Year"}, {listing.KeyRating, "Rating"}}

	popularPeopleColumns = [][2]string{{listing.KeyTitle, "Name"}, {listing.KeyPopularity, "Popularity"}}
)

func pageItems(p *tmdb.Page[tmdb.MediaItem]) []listing.Item {
	return listing.FromMediaList(p.Results)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.sectionContext(r)
	defer cancel()
	logger := *hlog.FromRequest(r)

	var g errgroup.Group
	trendingMovies := loadSection(ctx, &g, logger, "trending_movies", s.client.Trending, tmdb.TrendingParams{MediaType: tmdb.MediaTypeMovie, TimeWindow: "day"})
	trendingTV := loadSection(ctx, &g, logger, "trending_tv", s.client.Trending, tmdb.TrendingParams{MediaType: tmdb.MediaTypeTV, TimeWindow: "day"})
	popularMovies := loadSection(ctx, &g, logger, "popular_movies", s.client.PopularMovies, tmdb.PageParams{Page: 1})
	popularTV := loadSection(ctx, &g, logger, "popular_tv", s.client.PopularTV, tmdb.PageParams{Page: 1})
	upcoming := loadSection(ctx, &g, logger, "upcoming_movies", s.client.UpcomingMovies, tmdb.PageParams{Page: 1})
	topRatedMovies := loadSection(ctx, &g, logger, "top_rated_movies", s.client.TopRatedMovies, tmdb.PageParams{Page: 1})
	topRatedTV := loadSection(ctx, &g, logger, "top_rated_tv", s.client.TopRatedTV, tmdb.PageParams{Page: 1})
	_ = g.Wait()

	view := homeView{
		page:           page{Title: "Home", Active: "home"},
		TrendingMovies: mapSection(trendingMovies, pageItems),
		TrendingTV:     mapSection(trendingTV, pageItems),
		PopularMovies:  mapSection(popularMovies, pageItems),
		PopularTV:      mapSection(popularTV, pageItems),
		Upcoming:       mapSection(upcoming, pageItems),
		TopRatedMovies: mapSection(topRatedMovies, pageItems),
		TopRatedTV:     mapSection(topRatedTV, pageItems),
	}
	if view.TrendingMovies.HasData() && len(view.TrendingMovies.Data) > 0 {
		hero := view.TrendingMovies.Data[0]
		view.Hero = &hero
	}

	s.render(w, r, http.StatusOK, "home.html", view)
}

// regionOffers picks the configured region's providers; none yields an empty list
func (s *Server) regionOffers(w *tmdb.WatchProviders) []tmdb.ProviderOffer {
	region, ok := w.Region(s.region)
	if !ok {
		return nil
	}
	return region.Offers()
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()
	logger := *hlog.FromRequest(r)

	var g errgroup.Group
	details := loadSection(ctx, &g, logger, "movie", s.client.MovieDetails, tmdb.DetailParams{ID: id, Append: movieAppend})
	providers := loadSection(ctx, &g, logger, "movie_providers", s.client.MovieWatchProviders, tmdb.IDParams{ID: id})
	_ = g.Wait()

	view := movieView{
		page:      page{Title: "Movie"},
		Details:   *details,
		Providers: mapSection(providers, s.regionOffers),
	}
	if details.HasData() {
		view.Title = details.Data.Title
	}

	s.render(w, r, http.StatusOK, "movie.html", view)
}

func (s *Server) handleTV(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()
	logger := *hlog.FromRequest(r)

	var g errgroup.Group
	details := loadSection(ctx, &g, logger, "tv", s.client.TVDetails, tmdb.DetailParams{ID: id, Append: tvAppend})
	providers := loadSection(ctx, &g, logger, "tv_providers", s.client.TVWatchProviders, tmdb.IDParams{ID: id})
	_ = g.Wait()

	view := tvView{
		page:      page{Title: "TV Show"},
		Details:   *details,
		Providers: mapSection(providers, s.regionOffers),
	}
	if details.HasData() {
		view.Title = details.Data.Name
	}

	s.render(w, r, http.StatusOK, "tv.html", view)
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	// Season 0 holds the specials
	number, err := pathInt(r, "season", 0)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()

	var g errgroup.Group
	season := loadSection(ctx, &g, *hlog.FromRequest(r), "season", s.client.SeasonDetails, tmdb.SeasonParams{TVID: id, SeasonNumber: number})
	_ = g.Wait()

	view := seasonView{
		page:   page{Title: fmt.Sprintf("Season %d", number)},
		TVID:   id,
		Season: *season,
	}
	if season.HasData() && season.Data.Name != "" {
		view.Title = season.Data.Name
	}

	s.render(w, r, http.StatusOK, "season.html", view)
}

func (s *Server) handleEpisode(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	season, err := pathInt(r, "season", 0)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	number, err := pathInt(r, "episode", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()

	var g errgroup.Group
	params := tmdb.EpisodeParams{TVID: id, SeasonNumber: season, EpisodeNumber: number, Append: episodeAppend}
	episode := loadSection(ctx, &g, *hlog.FromRequest(r), "episode", s.client.EpisodeDetails, params)
	_ = g.Wait()

	view := episodeView{
		page:    page{Title: fmt.Sprintf("S%02dE%02d", season, number)},
		TVID:    id,
		Episode: *episode,
	}
	if episode.HasData() && episode.Data.Name != "" {
		view.Title = episode.Data.Name
	}

	s.render(w, r, http.StatusOK, "episode.html", view)
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id", 1)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	tab := r.URL.Query().Get("tab")
	switch tab {
	case "":
		tab = tmdb.MediaTypeMovie
	case tmdb.MediaTypeMovie, tmdb.MediaTypeTV:
	default:
		s.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid tab: %q", tab))
		return
	}
	pageNumber, err := queryPage(r, "page")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()
	logger := *hlog.FromRequest(r)

	var g errgroup.Group
	details := loadSection(ctx, &g, logger, "person", s.client.PersonDetails, tmdb.DetailParams{ID: id})
	credits := loadSection(ctx, &g, logger, "person_credits", s.client.PersonCombinedCredits, tmdb.IDParams{ID: id})
	_ = g.Wait()

	view := personView{
		page:    page{Title: "Person"},
		Details: *details,
		Credits: *credits,
		Tab:     tab,
	}
	if details.HasData() {
		view.Title = details.Data.Name
	}

	if credits.HasData() {
		path := fmt.Sprintf("/person/%d", id)
		for _, t := range []struct{ tab, label string }{
			{tmdb.MediaTypeMovie, "Movies"},
			{tmdb.MediaTypeTV, "TV Shows"},
		} {
			items := listing.Filmography(credits.Data, t.tab)
			current := 1
			if t.tab == tab {
				current = pageNumber
			}
			pager := listing.NewPager(current, listing.PageCount(len(items), s.listing.PageSize))
			view.Filmography = append(view.Filmography, filmography{
				Tab:   t.tab,
				Label: t.label,
				Total: len(items),
				Items: listing.Paginate(items, pager.Page, s.listing.PageSize),
				Pager: newPagination(pager, path, "page", url.Values{"tab": {t.tab}}),
			})
		}
	}

	s.render(w, r, http.StatusOK, "person.html", view)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	session := search.NewSession(q.Get("q"))

	tab, err := search.ParseTab(q.Get("tab"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session.SwitchTab(tab)

	pageNumber, err := queryPage(r, "page")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session.SetPage(pageNumber)

	sortCfg, err := querySort(r, listing.SortConfig{Key: listing.KeyTitle, Direction: listing.Asc})
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	view := searchView{
		page: page{Title: "Search", Active: "search", Query: session.Query},
		Tab:  session.Tab,
	}
	if session.Query == "" {
		s.render(w, r, http.StatusOK, "search.html", view)
		return
	}
	view.Title = "Search: " + session.Query

	ctx, cancel := s.sectionContext(r)
	defer cancel()
	logger := *hlog.FromRequest(r)

	var g errgroup.Group
	counts := loadSection(ctx, &g, logger, "search_counts", s.search.Counts, session.Query)
	results := loadSection(ctx, &g, logger, "search_results", s.search.Fetcher(session.Tab), session.Params(s.search.IncludeAdult()))
	_ = g.Wait()

	view.Counts = *counts
	view.Results = mapSection(results, func(p *tmdb.Page[tmdb.MediaItem]) []listing.Item {
		return listing.Sort(pageItems(p), sortCfg)
	})

	for _, t := range search.Tabs {
		tabQuery := url.Values{"q": {session.Query}, "tab": {string(t)}}
		st := searchTab{Tab: t, Label: t.Label(), URL: "/search?" + tabQuery.Encode(), Active: t == session.Tab}
		if counts.HasData() {
			st.Count = counts.Data.For(t)
		}
		view.Tabs = append(view.Tabs, st)
	}

	state := url.Values{"q": {session.Query}, "tab": {string(session.Tab)}}
	columns := mediaColumns
	if session.Tab == search.TabPeople {
		columns = peopleColumns
	}
	view.Columns = sortColumns("/search", state, sortCfg, listing.Asc, columns)

	if results.HasData() {
		pager := listing.NewPager(session.Page, listing.ClampPages(results.Data.TotalPages, s.listing.MaxPages))
		state.Set("sort", sortCfg.Key)
		state.Set("dir", string(sortCfg.Direction))
		view.Pager = newPagination(pager, "/search", "page", state)
	}

	s.render(w, r, http.StatusOK, "search.html", view)
}

func (s *Server) handleTopRatedMovies(w http.ResponseWriter, r *http.Request) {
	s.handleRanked(w, r, "Top Rated Movies", "/top-rated-movies", s.client.TopRatedMovies)
}

func (s *Server) handleTopRatedTV(w http.ResponseWriter, r *http.Request) {
	s.handleRanked(w, r, "Top Rated TV Shows", "/top-rated-tv-shows", s.client.TopRatedTV)
}

// handleRanked renders a paged top-rated table, sorted within the page by
// rating descending unless another column was picked
func (s *Server) handleRanked(w http.ResponseWriter, r *http.Request, heading, path string, fetch resource.Fetcher[tmdb.PageParams, *tmdb.Page[tmdb.MediaItem]]) {
	pageNumber, err := queryPage(r, "page")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sortCfg, err := querySort(r, listing.SortConfig{Key: listing.KeyRating, Direction: listing.Desc})
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()

	var g errgroup.Group
	results := loadSection(ctx, &g, *hlog.FromRequest(r), strings.TrimPrefix(path, "/"), fetch, tmdb.PageParams{Page: pageNumber})
	_ = g.Wait()

	view := listView{
		page:    page{Title: heading, Active: strings.TrimPrefix(path, "/")},
		Heading: heading,
		Results: mapSection(results, func(p *tmdb.Page[tmdb.MediaItem]) []listing.Item {
			return listing.Sort(pageItems(p), sortCfg)
		}),
		Columns: sortColumns(path, url.Values{"page": {fmt.Sprint(pageNumber)}}, sortCfg, listing.Desc, rankedColumns),
	}
	if results.HasData() {
		pager := listing.NewPager(pageNumber, listing.ClampPages(results.Data.TotalPages, s.listing.MaxPages))
		view.Pager = newPagination(pager, path, "page", url.Values{"sort": {sortCfg.Key}, "dir": {string(sortCfg.Direction)}})
	}

	s.render(w, r, http.StatusOK, "list.html", view)
}

func (s *Server) handlePopularPeople(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := queryPage(r, "page")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sortCfg, err := querySort(r, listing.SortConfig{Key: listing.KeyPopularity, Direction: listing.Desc})
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.sectionContext(r)
	defer cancel()

	var g errgroup.Group
	results := loadSection(ctx, &g, *hlog.FromRequest(r), "popular_people", s.client.PopularPeople, tmdb.PageParams{Page: pageNumber})
	_ = g.Wait()

	view := listView{
		page:    page{Title: "Popular People", Active: "popular-people"},
		Heading: "Popular People",
		Results: mapSection(results, func(p *tmdb.Page[tmdb.MediaItem]) []listing.Item {
			return listing.Sort(pageItems(p), sortCfg)
		}),
		Columns: sortColumns("/popular-people", url.Values{"page": {fmt.Sprint(pageNumber)}}, sortCfg, listing.Asc, popularPeopleColumns),
	}
	if results.HasData() {
		pager := listing.NewPager(pageNumber, listing.ClampPages(results.Data.TotalPages, s.listing.MaxPages))
		view.Pager = newPagination(pager, "/popular-people", "page", url.Values{"sort": {sortCfg.Key}, "dir": {string(sortCfg.Direction)}})
	}

	s.render(w, r, http.StatusOK, "people.html", view)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about.html", page{Title: "About", Active: "about"})
}
