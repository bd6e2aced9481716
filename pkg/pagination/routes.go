package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

// RouteTable maps logical route names to paths, like a named router.
type RouteTable struct {
	mu     sync.RWMutex
	routes map[string]string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{routes: make(map[string]string)}
}

// Register binds name to path. Re-registering replaces the path.
func (r *RouteTable) Register(name, path string) *RouteTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = path
	return r
}

// Generate returns path?count=<perPage>&page=<page> for the named route.
func (r *RouteTable) Generate(name string, page, perPage int) (string, error) {
	r.mu.RLock()
	path, ok := r.routes[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("route %q is not registered", name)
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("count", strconv.Itoa(perPage))
	return path + "?" + q.Encode(), nil
}
