// Package shopping holds the session's shopping list. It lives only as
// long as the process and is never persisted.
package shopping

import (
	"sync"

	"github.com/hammamikhairi/recipebox/internal/views"
)

// List is a deduplicated, insertion-ordered set of ingredients.
// Safe for concurrent use.
type List struct {
	mu    sync.RWMutex
	items []string
}

// New returns an empty list.
func New() *List {
	return &List{items: []string{}}
}

// Add merges every list of ingredients in, keeping first occurrences.
// It returns how many items were new.
func (l *List) Add(lists ...[]string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := len(l.items)
	l.items = views.BuildShoppingList(l.items, lists...)
	return len(l.items) - before
}

// Items returns a copy of the list.
func (l *List) Items() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.items...)
}

// Len returns the number of items.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Clear empties the list.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = []string{}
}
