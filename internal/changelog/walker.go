package changelog

// walk linearizes the commit graph into presentation order: from the tip
// backward, emitting a merge commit first, then the lineage of each
// non-first parent (in parent order) until it rejoins an earlier lineage,
// then the first parent's lineage.
//
// The order is purely structural. Timestamps are never compared: rapid
// automated commits can share a timestamp, and a timestamp sort would
// silently diverge from git's presentation order.
//
// The walk is iterative with an explicit stack, so arbitrarily long
// histories cannot exhaust the goroutine stack. A commit is emitted only
// once every child in the walked set has been emitted; a commit popped
// before that simply stays deferred until its remaining children push it
// again. Parents outside the walked set (history older than a shallow
// boundary) are skipped.
func walk(tip string, commits []RawCommit) []RawCommit {
	if tip == "" || len(commits) == 0 {
		return nil
	}

	index := make(map[string]RawCommit, len(commits))
	for _, c := range commits {
		index[c.Hash] = c
	}

	// pending counts, per commit, the children in the walked set that have
	// not been emitted yet.
	pending := make(map[string]int, len(commits))
	for _, c := range commits {
		for _, parent := range c.Parents {
			if _, ok := index[parent]; ok {
				pending[parent]++
			}
		}
	}

	ordered := make([]RawCommit, 0, len(commits))
	emitted := make(map[string]bool, len(commits))

	stack := []string{tip}
	for len(stack) > 0 {
		hash := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if emitted[hash] || pending[hash] > 0 {
			continue
		}
		c, ok := index[hash]
		if !ok {
			continue
		}

		emitted[hash] = true
		ordered = append(ordered, c)

		for _, parent := range c.Parents {
			if _, ok := index[parent]; ok {
				pending[parent]--
			}
		}

		// Push the first parent before the others so that non-first
		// parents (the branches being merged in) are walked first, in
		// parent order.
		if len(c.Parents) > 0 {
			stack = append(stack, c.Parents[0])
		}
		for i := len(c.Parents) - 1; i >= 1; i-- {
			stack = append(stack, c.Parents[i])
		}
	}

	return ordered
}
