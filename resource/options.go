package resource

// Option configures a Resource
type Option func(*settings)

type settings struct {
	autoFetch bool
	name      string
	onChange  any
}

// WithAutoFetch controls whether Mount and SetParams fetch. Defaults to true.
func WithAutoFetch(enabled bool) Option {
	return func(s *settings) {
		s.autoFetch = enabled
	}
}

// WithName tags the resource's log lines
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithOnChange registers a callback invoked after state transitions, in the
// order they happened. A transition already overtaken by a newer one is not
// reported. T must match the resource's data type.
func WithOnChange[T any](fn func(State[T])) Option {
	return func(s *settings) {
		s.onChange = fn
	}
}
