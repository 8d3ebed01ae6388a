// Package crawl — BFS frontier with deduplication.
// Maintains a seen set to avoid processing the same URL twice.
package crawl

// Frontier is a BFS work queue with URL deduplication.
type Frontier struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[string]bool),
	}
}

// Enqueue adds a URL if it hasn't been seen before.
func (f *Frontier) Enqueue(url string) {
	if f.seen[url] {
		return
	}
	f.seen[url] = true
	f.items = append(f.items, url)
}

// HasNext returns true if there are unprocessed URLs.
func (f *Frontier) HasNext() bool {
	return f.idx < len(f.items)
}

// Dequeue returns the next unprocessed URL and advances the pointer.
func (f *Frontier) Dequeue() string {
	url := f.items[f.idx]
	f.idx++
	return url
}

// Seen returns the total number of unique URLs seen.
func (f *Frontier) Seen() int {
	return len(f.seen)
}

// URLs returns all discovered URLs in BFS order.
func (f *Frontier) URLs() []string {
	return f.items
}
