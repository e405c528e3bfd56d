package crawl

// frontier is a bounded FIFO of page URLs. A URL is accepted once; the
// bound counts accepted URLs, so discovery stops growing at the page limit.
type frontier struct {
	items []string
	seen  map[string]struct{}
	next  int
	limit int
}

func newFrontier(limit int) *frontier {
	return &frontier{seen: make(map[string]struct{}), limit: limit}
}

// push enqueues u and reports whether it was new and within the limit.
func (f *frontier) push(u string) bool {
	if _, ok := f.seen[u]; ok || f.full() {
		return false
	}
	f.seen[u] = struct{}{}
	f.items = append(f.items, u)
	return true
}

func (f *frontier) full() bool {
	return f.limit > 0 && len(f.items) >= f.limit
}

func (f *frontier) pending() bool {
	return f.next < len(f.items)
}

func (f *frontier) pop() string {
	u := f.items[f.next]
	f.next++
	return u
}

// all returns accepted URLs in discovery order.
func (f *frontier) all() []string {
	out := make([]string, len(f.items))
	copy(out, f.items)
	return out
}
