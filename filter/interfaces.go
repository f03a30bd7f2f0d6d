package filter

import "github.com/s0up4200/filmdeck/listing"

// Filter decides whether a listing row is kept
type Filter interface {
	// Evaluate checks if an item matches the filter criteria
	Evaluate(item listing.Item) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Apply returns the items that match f, in their original order. A nil
// filter keeps everything.
func Apply(f Filter, items []listing.Item) []listing.Item {
	if f == nil {
		return items
	}
	matched := make([]listing.Item, 0, len(items))
	for _, item := range items {
		if f.Evaluate(item) {
			matched = append(matched, item)
		}
	}
	return matched
}
