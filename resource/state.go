package resource

// Phase describes where a resource is in its fetch lifecycle
type Phase int

const (
	// PhaseIdle means nothing has been fetched yet, or the state was cleared
	PhaseIdle Phase = iota
	// PhaseLoading means a fetch is in flight
	PhaseLoading
	// PhaseSuccess means Data holds the last fetch result
	PhaseSuccess
	// PhaseFailure means Err holds the last fetch error
	PhaseFailure
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of a resource. Data is only set in PhaseSuccess and
// Err only in PhaseFailure.
type State[T any] struct {
	Phase Phase
	Data  T
	Err   error
}

// Loading reports whether a fetch is in flight
func (s State[T]) Loading() bool {
	return s.Phase == PhaseLoading
}

// HasData reports whether Data holds a result
func (s State[T]) HasData() bool {
	return s.Phase == PhaseSuccess
}

// Failed reports whether the last fetch failed
func (s State[T]) Failed() bool {
	return s.Phase == PhaseFailure
}
