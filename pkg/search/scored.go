package search

// scored pairs a queue payload with its score.
type scored[T any, K Score] struct {
	item  T
	score K
}

// compareScored orders two scores for the priority queue. A positive result
// means left must be popped before right, so smaller scores compare greater.
//
// Scores that are not comparable (NaN) fall back to: equal when they differ
// from each other in both directions, right first when left is not even equal
// to itself, left first otherwise. Totally ordered scores never reach the
// fallback.
func compareScored[K Score](left, right K) int {
	switch {
	case left < right:
		return 1
	case left > right:
		return -1
	case left == right:
		return 0
	case left != right && right != left:
		return 0
	case left != left:
		return -1
	default:
		return 1
	}
}

// scoredHeap is a container/heap implementation popping the minimum score
// first.
type scoredHeap[T any, K Score] []scored[T, K]

func (h scoredHeap[T, K]) Len() int { return len(h) }
func (h scoredHeap[T, K]) Less(i, j int) bool {
	return compareScored(h[i].score, h[j].score) > 0
}
func (h scoredHeap[T, K]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoredHeap[T, K]) Push(x any) { *h = append(*h, x.(scored[T, K])) }

func (h *scoredHeap[T, K]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
