// Package images loads the image configuration once per process and turns
// API image paths into URLs.
package images

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/filmdeck/tmdb"
)

// Loader fetches the API configuration
type Loader func(ctx context.Context) (*tmdb.Configuration, error)

// Status is what consumers see of the provider at one point in time
type Status struct {
	Config  *Config
	Loading bool
	Err     error
}

// Provider holds the process-wide image configuration. It is loaded by a
// single call and never refreshed or retried.
type Provider struct {
	loader Loader
	logger zerolog.Logger

	once sync.Once
	done chan struct{}

	mu     sync.RWMutex
	config *Config
	err    error
}

// NewProvider creates a provider. Nothing is loaded until Start.
func NewProvider(loader Loader, logger zerolog.Logger) *Provider {
	return &Provider{
		loader: loader,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start triggers the configuration load in the background. Only the first
// call has any effect.
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go p.load(ctx)
	})
}

// Load starts the load if needed and waits for it
func (p *Provider) Load(ctx context.Context) error {
	p.Start(ctx)
	return p.Wait(ctx)
}

// Wait blocks until the load has finished and returns its error. Before
// Start it blocks until ctx ends.
func (p *Provider) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current status. Loading stays true until the load completes.
func (p *Provider) Snapshot() Status {
	select {
	case <-p.done:
	default:
		return Status{Loading: true}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{Config: p.config, Err: p.err}
}

// ResolveImageURL joins the base URL, size and path. It returns "" while the
// configuration is unavailable or when path is empty. An empty size means
// "original".
func (p *Provider) ResolveImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	status := p.Snapshot()
	if status.Config == nil || status.Config.ImageBaseURL() == "" {
		return ""
	}
	if size == "" {
		size = SizeOriginal
	}
	return status.Config.ImageBaseURL() + size + path
}

func (p *Provider) load(ctx context.Context) {
	start := time.Now()
	cfg, err := p.loader(ctx)

	p.mu.Lock()
	if err != nil {
		p.err = fmt.Errorf("failed to load image configuration: %w", err)
	} else if cfg == nil {
		p.err = fmt.Errorf("failed to load image configuration: empty response")
	} else {
		p.config = NewConfig(cfg)
	}
	loadErr := p.err
	p.mu.Unlock()
	close(p.done)

	if loadErr != nil {
		p.logger.Error().Err(loadErr).Msg("Image configuration unavailable, images will not be shown")
		return
	}
	p.logger.Debug().
		Str("base_url", p.config.ImageBaseURL()).
		Dur("duration", time.Since(start)).
		Msg("Image configuration loaded")
}
