package trace

// History is a bounded FIFO of recent instruction records (spec.md §4.3,
// C4). Push is O(1) amortized; once len reaches the cap, the oldest record
// is dropped before the new one is appended.
type History struct {
	records    []InstRecord
	maxHistory uint
}

// NewHistory returns an empty history ring with the given cap.
func NewHistory(maxHistory uint) *History {
	return &History{maxHistory: maxHistory}
}

// Len returns the number of records currently held.
func (h *History) Len() int {
	return len(h.records)
}

// MaxHistory returns the configured cap.
func (h *History) MaxHistory() uint {
	return h.maxHistory
}

// Push appends rec, evicting the oldest record first if already at cap.
func (h *History) Push(rec InstRecord) {
	if h.maxHistory == 0 {
		return
	}
	if uint(len(h.records)) >= h.maxHistory {
		h.records = h.records[1:]
	}
	h.records = append(h.records, rec)
}

// SetMaxHistory changes the cap. If the new cap is smaller than the current
// size, the oldest records are dropped to fit (spec.md §4.3: "when the cap
// shrinks below current size, the oldest records are dropped").
func (h *History) SetMaxHistory(n uint) {
	if n < h.maxHistory && uint(len(h.records)) > n {
		drop := uint(len(h.records)) - n
		h.records = h.records[drop:]
	}
	h.maxHistory = n
}

// Clear empties the ring without releasing its backing storage.
func (h *History) Clear() {
	h.records = h.records[:0]
}

// Free empties the ring and releases its backing storage, per spec.md §3:
// "when buffering is turned off, the ring is released (not merely cleared)".
func (h *History) Free() {
	h.records = nil
}

// Records returns the ring's contents in chronological (push) order. The
// caller must not mutate the returned slice.
func (h *History) Records() []InstRecord {
	return h.records
}
