package service

// childKey describes how to identify and compare a child row.
type childKey[T any] struct {
	id      func(T) uint
	clearID func(*T)
	same    func(a, b T) bool
}

// reconciliation is the outcome of matching an incoming child list against
// the rows a recipe already owns.
type reconciliation[T any] struct {
	Result  []T
	Kept    int
	Changed int
	Added   int
	Removed int
}

// reconcile returns the collection the owner should end up with.
//
// Incoming children that carry the id of an existing row replace that row in
// place. Incoming children without an id reuse an unmatched existing row with
// identical values. Everything else is new; an id that does not belong to the
// owner is cleared so the row gets inserted rather than moved. Existing rows
// left unmatched are dropped. The result follows the incoming order.
func reconcile[T any](existing, incoming []T, key childKey[T]) reconciliation[T] {
	var out reconciliation[T]

	byID := make(map[uint]int, len(existing))
	for i, row := range existing {
		if id := key.id(row); id != 0 {
			byID[id] = i
		}
	}

	matched := make([]bool, len(existing))
	resolved := make([]int, len(incoming))
	pending := make([]T, len(incoming))
	copy(pending, incoming)

	// Ids first, so an id-less duplicate cannot claim a row addressed later.
	for i := range pending {
		resolved[i] = -1
		id := key.id(pending[i])
		if id == 0 {
			continue
		}
		if idx, ok := byID[id]; ok && !matched[idx] {
			matched[idx] = true
			resolved[i] = idx
			continue
		}
		key.clearID(&pending[i])
	}

	out.Result = make([]T, 0, len(incoming))
	for i, child := range pending {
		if idx := resolved[i]; idx >= 0 {
			if key.same(existing[idx], child) {
				out.Kept++
				out.Result = append(out.Result, existing[idx])
			} else {
				out.Changed++
				out.Result = append(out.Result, child)
			}
			continue
		}

		if idx := findUnmatched(existing, matched, child, key.same); idx >= 0 {
			matched[idx] = true
			out.Kept++
			out.Result = append(out.Result, existing[idx])
			continue
		}

		out.Added++
		out.Result = append(out.Result, child)
	}

	for _, m := range matched {
		if !m {
			out.Removed++
		}
	}
	return out
}

func findUnmatched[T any](existing []T, matched []bool, child T, same func(a, b T) bool) int {
	for i := range existing {
		if !matched[i] && same(existing[i], child) {
			return i
		}
	}
	return -1
}
