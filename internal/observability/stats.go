package observability

import (
	"sort"
	"sync"
	"time"
)

// RouteStats tracks request frequency per route so operators can see which
// maintenance actions are in use without a metrics backend.
type RouteStats struct {
	mu     sync.RWMutex
	routes map[string]*RouteStat
	window time.Duration
	now    func() time.Time
}

// RouteStat holds statistics for one route.
type RouteStat struct {
	Route    string         `json:"route"`
	Count    int64          `json:"count"`
	LastSeen time.Time      `json:"last_seen"`
	Statuses map[string]int `json:"statuses"` // status class → count, e.g. "2xx" → 5
}

// NewRouteStats creates a tracker whose entries expire after window.
func NewRouteStats(window time.Duration) *RouteStats {
	return &RouteStats{
		routes: make(map[string]*RouteStat),
		window: window,
		now:    time.Now,
	}
}

// Record counts one request for route with the given status code.
func (s *RouteStats) Record(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.routes[route]
	if !ok {
		st = &RouteStat{Route: route, Statuses: make(map[string]int)}
		s.routes[route] = st
	}
	st.Count++
	st.LastSeen = s.now()
	st.Statuses[StatusClass(status)]++
}

// Top returns copies of the n most requested routes, most frequent first.
func (s *RouteStats) Top(n int) []RouteStat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.routes) == 0 {
		return []RouteStat{}
	}

	out := make([]RouteStat, 0, len(s.routes))
	for _, st := range s.routes {
		c := RouteStat{Route: st.Route, Count: st.Count, LastSeen: st.LastSeen, Statuses: make(map[string]int, len(st.Statuses))}
		for k, v := range st.Statuses {
			c.Statuses[k] = v
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Route < out[j].Route
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Prune removes routes not seen within the window.
func (s *RouteStats) Prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := s.now().Add(-s.window)
	for route, st := range s.routes {
		if st.LastSeen.Before(threshold) {
			delete(s.routes, route)
		}
	}
}

// StatusClass maps 204 to "2xx", 503 to "5xx" and so on.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
