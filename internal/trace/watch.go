package trace

// Watch is a declared (name, address, size) triple whose current memory
// value is printed with each traced instruction (spec.md §3, C5). Identity
// for dedup is (Addr, Size); Size is 1 or 2.
type Watch struct {
	Name string
	Addr uint16
	Size uint8
}

// WatchTable is an ordered list of watches, deduplicated by (Addr, Size).
type WatchTable struct {
	watches []Watch
}

// Add inserts a new watch, or overwrites the name of an existing one with
// the same (addr, size) (spec.md §4.4).
func (t *WatchTable) Add(name string, addr uint16, size uint8) {
	for i := range t.watches {
		if t.watches[i].Addr == addr && t.watches[i].Size == size {
			t.watches[i].Name = name
			return
		}
	}
	t.watches = append(t.watches, Watch{Name: name, Addr: addr, Size: size})
}

// Remove deletes the first watch matching name; silent if absent.
func (t *WatchTable) Remove(name string) {
	for i := range t.watches {
		if t.watches[i].Name == name {
			t.watches = append(t.watches[:i], t.watches[i+1:]...)
			return
		}
	}
}

// Clear removes every watch.
func (t *WatchTable) Clear() {
	t.watches = nil
}

// List returns the watches in insertion order. The caller must not mutate
// the returned slice.
func (t *WatchTable) List() []Watch {
	return t.watches
}

// NonDebugRange is an inclusive address range in which the hook returns
// immediately, used to suppress tracing of ROM calls (spec.md §3).
type NonDebugRange struct {
	From, To uint16
}

// NonDebugRanges is a small, unmerged, linearly-scanned list of ranges
// (spec.md §4.4: "callers are expected to supply few").
type NonDebugRanges struct {
	ranges []NonDebugRange
}

// Add appends a new inclusive range.
func (r *NonDebugRanges) Add(from, to uint16) {
	r.ranges = append(r.ranges, NonDebugRange{From: from, To: to})
}

// Contains reports whether pc falls within any registered range.
func (r *NonDebugRanges) Contains(pc uint16) bool {
	for _, rg := range r.ranges {
		if pc >= rg.From && pc <= rg.To {
			return true
		}
	}
	return false
}
