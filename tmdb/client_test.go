package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	client, err := NewClient("test-key", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		apiKey  string
		opts    []Option
		wantErr error
	}{
		{
			name:   "valid config",
			apiKey: "test-key",
		},
		{
			name:    "missing API key",
			apiKey:  "",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "blank API key",
			apiKey:  "   ",
			wantErr: ErrMissingAPIKey,
		},
		{
			name:    "empty base URL",
			apiKey:  "test-key",
			opts:    []Option{WithBaseURL("")},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiKey, logger, tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
			assert.Equal(t, tt.apiKey, client.apiKey)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()
	customHTTPClient := &http.Client{Timeout: 5 * time.Second}

	client, err := NewClient("test-key", logger,
		WithBaseURL("http://localhost:9999/3/"),
		WithHTTPClient(customHTTPClient),
		WithTimeout(30*time.Second),
		WithLanguage("de-DE"),
		WithUserAgent("filmdeck-test"),
	)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/3", client.BaseURL())
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "de-DE", client.language)
	assert.Equal(t, "filmdeck-test", client.userAgent)
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	transport := &http.Transport{}
	shared := &http.Client{Timeout: 5 * time.Second, Transport: transport}

	slow, err := NewClient("test-key", zerolog.Nop(), WithHTTPClient(shared), WithTimeout(time.Minute))
	require.NoError(t, err)
	fast, err := NewClient("test-key", zerolog.Nop(), WithHTTPClient(shared), WithTimeout(2*time.Second))
	require.NoError(t, err)
	plain, err := NewClient("test-key", zerolog.Nop(), WithHTTPClient(shared))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, shared.Timeout)
	assert.Equal(t, time.Minute, slow.httpClient.Timeout)
	assert.Equal(t, 2*time.Second, fast.httpClient.Timeout)
	assert.Same(t, shared, plain.httpClient)
	assert.Same(t, transport, slow.httpClient.Transport)
	assert.Same(t, transport, fast.httpClient.Transport)
}

func TestNewClientDoesNoNetworkIO(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := NewClient("test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGetSendsAuthAndLanguage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/configuration", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "filmdeck/1.0", r.Header.Get("User-Agent"))

		json.NewEncoder(w).Encode(map[string]any{
			"images": map[string]any{
				"secure_base_url": "https://image.tmdb.org/t/p/",
				"poster_sizes":    []string{"w92", "w500", "original"},
			},
		})
	}, WithLanguage("en-US"), WithUserAgent("filmdeck/1.0"))

	cfg, err := client.Configuration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/", cfg.Images.SecureBaseURL)
	assert.Equal(t, []string{"w92", "w500", "original"}, cfg.Images.PosterSizes)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
		wantCode     int
		wantMessage  string
	}{
		{
			name:         "invalid key",
			status:       http.StatusUnauthorized,
			body:         `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`,
			wantSentinel: ErrUnauthorized,
			wantCode:     7,
			wantMessage:  "Invalid API key: You must be granted a valid key.",
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			body:         `{"status_code":34,"status_message":"The resource you requested could not be found."}`,
			wantSentinel: ErrNotFound,
			wantCode:     34,
			wantMessage:  "The resource you requested could not be found.",
		},
		{
			name:        "server error without body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.MovieDetails(context.Background(), DetailParams{ID: 1})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)

			if tt.wantSentinel != nil {
				assert.ErrorIs(t, err, tt.wantSentinel)
			} else {
				assert.False(t, errors.Is(err, ErrNotFound))
				assert.False(t, errors.Is(err, ErrUnauthorized))
			}
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page": 1, "results": [`))
	})

	_, err := client.PopularMovies(context.Background(), PageParams{Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode /movie/popular response")
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.TopRatedTV(ctx, PageParams{Page: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAPIErrorString(t *testing.T) {
	withCode := &APIError{StatusCode: 401, Code: 7, Message: "Invalid API key"}
	assert.Equal(t, "tmdb API error: status 401 (code 7): Invalid API key", withCode.Error())
	assert.True(t, withCode.IsUnauthorized())
	assert.False(t, withCode.IsNotFound())

	withoutCode := &APIError{StatusCode: 502, Message: "Bad Gateway"}
	assert.Equal(t, "tmdb API error: status 502: Bad Gateway", withoutCode.Error())
	assert.Nil(t, withoutCode.Unwrap())
}
