package skew

import "container/heap"

// topLines keeps the k highest-voted lines seen so far. It is a min-heap, so
// the weakest kept line sits at index 0 and is the one displaced. Among
// equal vote counts the later bucket is weaker, which means a tie never
// displaces a bucket that was offered first.
type topLines struct {
	k     int
	lines []Line
}

func newTopLines(k int) *topLines {
	return &topLines{k: k, lines: make([]Line, 0, k)}
}

func (t *topLines) Len() int { return len(t.lines) }

func (t *topLines) Less(i, j int) bool {
	a, b := t.lines[i], t.lines[j]
	if a.Votes != b.Votes {
		return a.Votes < b.Votes
	}
	return a.Index > b.Index
}

func (t *topLines) Swap(i, j int) { t.lines[i], t.lines[j] = t.lines[j], t.lines[i] }

func (t *topLines) Push(x any) { t.lines = append(t.lines, x.(Line)) }

func (t *topLines) Pop() any {
	n := len(t.lines)
	l := t.lines[n-1]
	t.lines = t.lines[:n-1]
	return l
}

// offer considers a bucket with the given vote count. Buckets must be offered
// in increasing index order.
func (t *topLines) offer(votes int, index int) bool {
	if len(t.lines) < t.k {
		heap.Push(t, Line{Votes: votes, Index: index})
		return true
	}
	if votes <= t.lines[0].Votes {
		return false
	}
	t.lines[0] = Line{Votes: votes, Index: index}
	heap.Fix(t, 0)
	return true
}

// sorted drains the heap, strongest line first.
func (t *topLines) sorted() []Line {
	out := make([]Line, len(t.lines))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(t).(Line)
	}
	return out
}
