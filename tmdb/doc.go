// Package tmdb provides a client for The Movie Database (TMDB) v3 REST API.
//
// The client covers the read-only endpoints filmdeck renders: configuration,
// trending and curated lists, movie/TV/person details, seasons, episodes,
// search, discovery, genres and watch providers.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := tmdb.NewClient(
//		"your-api-key",
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.TopRatedTV(ctx, tmdb.PageParams{Page: 2})
//
// Every endpoint method has the shape func(ctx, Params) (T, error) with a
// comparable params struct, so methods can be handed directly to
// resource.New as fetchers.
//
// # Authentication
//
// The API key is sent as the api_key query parameter on every request.
// NewClient refuses an empty key with ErrMissingAPIKey; it performs no
// network I/O.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the HTTP status and
// TMDB's status_code/status_message body. APIError unwraps to ErrNotFound or
// ErrUnauthorized where applicable:
//
//	if errors.Is(err, tmdb.ErrNotFound) {
//		// render "not found"
//	}
package tmdb
