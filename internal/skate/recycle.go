package skate

// Prune drops every entity that has fallen more than distance behind
// skaterZ and returns how many were removed. Order is preserved.
func (e *Entities) Prune(skaterZ, distance float64) int {
	limit := skaterZ + distance
	var removed, n int

	e.Decorations, n = pruneBehind(e.Decorations, limit)
	removed += n
	e.Barriers, n = pruneBehind(e.Barriers, limit)
	removed += n
	e.Cracks, n = pruneBehind(e.Cracks, limit)
	removed += n
	e.Obstacles, n = pruneBehind(e.Obstacles, limit)
	removed += n

	return removed
}

// pruneBehind compacts items in place, keeping those with Z <= limit.
func pruneBehind[T Trackable](items []T, limit float64) ([]T, int) {
	kept := items[:0]
	for _, it := range items {
		if it.Position().Z() <= limit {
			kept = append(kept, it)
		}
	}
	removed := len(items) - len(kept)
	clear(items[len(kept):])
	return kept, removed
}
