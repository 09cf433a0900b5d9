package dispatcher

import (
	"slices"
	"sort"
	"sync"

	"github.com/dshills/funcobj/internal/dispatcher/handler"
	"github.com/dshills/funcobj/internal/input"
)

// routes finds the handler for an action. A namespace handler that
// accepts the action wins; then the exact-name handlers by descending
// priority; then the fallback.
type routes struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
	exact      map[string][]handler.Handler
	fallback   handler.Handler
}

func newRoutes() *routes {
	return &routes{
		namespaces: make(map[string]handler.NamespaceHandler),
		exact:      make(map[string][]handler.Handler),
	}
}

func (r *routes) addNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	r.namespaces[h.Namespace()] = h
	r.mu.Unlock()
}

func (r *routes) removeNamespace(ns string) {
	r.mu.Lock()
	delete(r.namespaces, ns)
	r.mu.Unlock()
}

// add keeps equal priorities in registration order.
func (r *routes) add(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hs := append(r.exact[name], h)
	sort.SliceStable(hs, func(i, j int) bool {
		return handler.PriorityOf(hs[i]) > handler.PriorityOf(hs[j])
	})
	r.exact[name] = hs
}

func (r *routes) remove(name string) {
	r.mu.Lock()
	delete(r.exact, name)
	r.mu.Unlock()
}

func (r *routes) setFallback(h handler.Handler) {
	r.mu.Lock()
	r.fallback = h
	r.mu.Unlock()
}

func (r *routes) lookup(action input.Action) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ns, ok := r.namespaces[action.Namespace()]; ok && ns.CanHandle(action.Name) {
		return handler.AsHandler(ns)
	}
	for _, h := range r.exact[action.Name] {
		if h.CanHandle(action.Name) {
			return h
		}
	}
	return r.fallback
}

func (r *routes) names() (namespaces, actions []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for ns := range r.namespaces {
		namespaces = append(namespaces, ns)
	}
	for name := range r.exact {
		actions = append(actions, name)
	}
	slices.Sort(namespaces)
	slices.Sort(actions)
	return namespaces, actions
}
