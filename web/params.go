package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/s0up4200/filmdeck/listing"
)

// pathInt parses a route variable that must be at least lowest
func pathInt(r *http.Request, name string, lowest int) (int, error) {
	raw := mux.Vars(r)[name]
	n, err := strconv.Atoi(raw)
	if err != nil || n < lowest {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}

// queryPage parses a 1-based page query value; absent means 1
func queryPage(r *http.Request, param string) (int, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", param, raw)
	}
	return n, nil
}

// querySort parses the sort and dir query values, falling back to def when
// no sort key is given
func querySort(r *http.Request, def listing.SortConfig) (listing.SortConfig, error) {
	q := r.URL.Query()
	key := q.Get("sort")
	if key == "" {
		return def, nil
	}
	if dir := q.Get("dir"); dir != "" {
		key += ":" + dir
	}
	return listing.ParseSort(key)
}
