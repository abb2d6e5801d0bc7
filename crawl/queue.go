package crawl

// Queue is the breadth-first frontier of a discovery run. URLs are
// normalised before deduplication, and once limit unique URLs have been
// seen the queue accepts nothing more.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
	limit int
}

// NewQueue creates an empty Queue. limit <= 0 means unbounded.
func NewQueue(limit int) *Queue {
	return &Queue{seen: make(map[string]struct{}), limit: limit}
}

// Add enqueues rawURL unless it was seen before. It reports false once the
// queue is full.
func (q *Queue) Add(rawURL string) bool {
	if q.Full() {
		return false
	}
	u := NormalizeURL(rawURL)
	if _, ok := q.seen[u]; !ok {
		q.seen[u] = struct{}{}
		q.items = append(q.items, u)
	}
	return true
}

// Full reports whether the limit has been reached.
func (q *Queue) Full() bool {
	return q.limit > 0 && len(q.seen) >= q.limit
}

// Pop returns the next unvisited URL.
func (q *Queue) Pop() (string, bool) {
	if q.next >= len(q.items) {
		return "", false
	}
	u := q.items[q.next]
	q.next++
	return u, true
}

// All returns every accepted URL in discovery order.
func (q *Queue) All() []string {
	return q.items
}
