package hilo

import "blackjack-server/pkg/deck"

// Entry is a single card in the history
type Entry struct {
	Rank       deck.Rank `json:"rank"`
	Suit       deck.Suit `json:"suit,omitempty"`
	CountDelta int       `json:"countDelta"`
}

// History is a fixed-capacity ring buffer of the most recent entries
type History struct {
	entries []Entry
	next    int
	size    int
}

// NewHistory returns a history that holds up to capacity entries
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		panic("history capacity must be > 0")
	}

	return &History{
		entries: make([]Entry, capacity),
	}
}

// Push adds an entry, evicting the oldest when full
func (h *History) Push(e Entry) {
	h.entries[h.next] = e
	h.next = (h.next + 1) % len(h.entries)
	if h.size < len(h.entries) {
		h.size++
	}
}

// Len returns the number of entries held
func (h *History) Len() int {
	return h.size
}

// Clear drops every entry
func (h *History) Clear() {
	h.next = 0
	h.size = 0
}

// Entries returns the entries, most recent first
func (h *History) Entries() []Entry {
	out := make([]Entry, h.size)
	n := len(h.entries)
	for i := 0; i < h.size; i++ {
		out[i] = h.entries[(h.next-1-i+n)%n]
	}

	return out
}
