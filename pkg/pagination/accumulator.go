// Package pagination accumulates page-numbered list results.
package pagination

// Accumulator collects items from successive pages without ever holding two
// items with the same key. The zero value is not usable; call NewAccumulator.
type Accumulator[T any, K comparable] struct {
	key   func(T) K
	items []T
}

func NewAccumulator[T any, K comparable](key func(T) K) *Accumulator[T, K] {
	return &Accumulator[T, K]{key: key}
}

// Items returns a copy of the accumulated items in display order.
func (a *Accumulator[T, K]) Items() []T {
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Accumulator[T, K]) Len() int {
	return len(a.items)
}

// Replace discards everything and keeps the first occurrence of each key in items.
func (a *Accumulator[T, K]) Replace(items []T) {
	a.items = a.items[:0:0]
	a.Merge(items)
}

// Merge appends the items whose key is not present yet. Items already held
// keep their position and value.
func (a *Accumulator[T, K]) Merge(items []T) {
	seen := make(map[K]struct{}, len(a.items)+len(items))
	for _, it := range a.items {
		seen[a.key(it)] = struct{}{}
	}

	for _, it := range items {
		k := a.key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		a.items = append(a.items, it)
	}
}

// MergePage replaces the list for page 1 and merges otherwise.
func (a *Accumulator[T, K]) MergePage(page int, items []T) {
	if page <= 1 {
		a.Replace(items)
		return
	}
	a.Merge(items)
}

// Prepend puts item first and drops any other item with the same key.
func (a *Accumulator[T, K]) Prepend(item T) {
	k := a.key(item)
	out := make([]T, 0, len(a.items)+1)
	out = append(out, item)
	for _, it := range a.items {
		if a.key(it) != k {
			out = append(out, it)
		}
	}
	a.items = out
}

// Update replaces the item with the same key in place. It reports whether a
// match was found.
func (a *Accumulator[T, K]) Update(item T) bool {
	k := a.key(item)
	for i, it := range a.items {
		if a.key(it) == k {
			a.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the item with key k and reports whether it was present.
func (a *Accumulator[T, K]) Remove(k K) bool {
	for i, it := range a.items {
		if a.key(it) == k {
			a.items = append(a.items[:i:i], a.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the item with key k.
func (a *Accumulator[T, K]) Get(k K) (T, bool) {
	for _, it := range a.items {
		if a.key(it) == k {
			return it, true
		}
	}
	var zero T
	return zero, false
}
