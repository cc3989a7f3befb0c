package ir

// GenEntryBlocks runs the same three-phase discovery as GenPostOrder but
// records only the root of each DFS tree: the explicit entry first (if
// any), then predecessorless blocks in block-list order, then one root per
// otherwise-unreachable component (spec.md §4.7 "Entry-block enumeration").
func GenEntryBlocks(fn *Function, entryBlock int, traits GraphTraits) []int {
	visited := make([]bool, len(fn.Blocks))
	var entries []int

	var visit func(bb int, addToEntries bool)
	visit = func(bb int, addToEntries bool) {
		if visited[bb] {
			return
		}
		visited[bb] = true
		if addToEntries {
			entries = append(entries, bb)
		}
		for _, succ := range traits.Successors(fn, bb) {
			visit(succ, false)
		}
	}

	if entryBlock >= 0 {
		visit(entryBlock, true)
	}
	for i := range fn.Blocks {
		if len(traits.Predecessors(fn, i)) == 0 {
			visit(i, true)
		}
	}
	for i := range fn.Blocks {
		visit(i, true)
	}

	return entries
}
