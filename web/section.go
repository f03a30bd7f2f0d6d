package web

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/filmdeck/resource"
)

// Section is one independently loaded block of a page. Templates branch on
// Loading, Failed and HasData.
type Section[T any] struct {
	resource.State[T]
}

// loadSection fetches one section through a resource on g. A section that is
// still in flight when ctx ends is rendered in its loading state.
func loadSection[P comparable, T any](ctx context.Context, g *errgroup.Group, logger zerolog.Logger, name string, fetch resource.Fetcher[P, T], params P) *Section[T] {
	section := &Section[T]{State: resource.State[T]{Phase: resource.PhaseLoading}}
	r := resource.New(fetch, params, logger, resource.WithName(name))

	g.Go(func() error {
		r.Mount(ctx)
		state, err := r.Wait(ctx)
		// A fetch cut short by the deadline is still loading as far as the page is concerned
		if err != nil || (state.Failed() && ctx.Err() != nil) {
			logger.Warn().Err(err).Str("section", name).Msg("Section did not finish loading")
			r.Close()
			return nil
		}
		if state.Failed() {
			logger.Error().Err(state.Err).Str("section", name).Msg("Failed to load section")
		}
		section.State = state
		return nil
	})

	return section
}

// mapSection converts a settled section's data, keeping its phase and error
func mapSection[T, U any](s *Section[T], convert func(T) U) Section[U] {
	out := Section[U]{State: resource.State[U]{Phase: s.Phase, Err: s.Err}}
	if s.HasData() {
		out.Data = convert(s.Data)
	}
	return out
}
