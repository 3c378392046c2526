package ir

import "golang.org/x/exp/slices"

// maxOptimizerIterations bounds the fixed-point loop so a bug in either pass
// can never hang the compiler.
const maxOptimizerIterations = 256

// Optimize runs the two-pass optimizer (terminator truncation, then
// unreachable-block pruning) to a fixed point, in place.
func Optimize(c *Code) {
	for i := 0; i < maxOptimizerIterations; i++ {
		changed := truncateAfterTerminators(c)
		if pruneUnreachable(c) {
			changed = true
		}
		if !changed {
			return
		}
	}
}

// truncateAfterTerminators drops every op following the first terminator in
// each block; a block normally ends in exactly one terminator anyway, but
// dead code can appear after optimizer passes interact (e.g. pruning a
// successor turns what was a fall-through into unreachable tail ops).
func truncateAfterTerminators(c *Code) bool {
	changed := false
	for _, b := range c.Blocks {
		for i, op := range b.Ops {
			if IsTerminator(op.Kind) && i+1 < len(b.Ops) {
				b.Ops = b.Ops[:i+1]
				changed = true
				break
			}
		}
	}
	return changed
}

// pruneUnreachable computes the set of blocks reachable from .main by
// following label references plus fall-through from non-terminated blocks,
// and drops everything else.
func pruneUnreachable(c *Code) bool {
	indexOf := make(map[string]int, len(c.Blocks))
	for i, b := range c.Blocks {
		indexOf[b.Label] = i
	}

	var reached []string
	worklist := []string{MainLabel}
	for len(worklist) > 0 {
		label := worklist[0]
		worklist = worklist[1:]
		if slices.Contains(reached, label) {
			continue
		}
		idx, ok := indexOf[label]
		if !ok {
			continue
		}
		reached = append(reached, label)

		b := c.Blocks[idx]
		for _, op := range b.Ops {
			if IsLabelOp(op.Kind) && !slices.Contains(reached, op.StrValue) {
				worklist = append(worklist, op.StrValue)
			}
		}
		if last, ok := b.LastOp(); (!ok || !IsTerminator(last.Kind)) && idx+1 < len(c.Blocks) {
			next := c.Blocks[idx+1].Label
			if !slices.Contains(reached, next) {
				worklist = append(worklist, next)
			}
		}
	}

	kept := make([]*Block, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if slices.Contains(reached, b.Label) {
			kept = append(kept, b)
		}
	}
	changed := len(kept) != len(c.Blocks)
	if changed {
		c.Blocks = kept
		newByLabel := make(map[string]*Block, len(kept))
		for _, b := range kept {
			newByLabel[b.Label] = b
		}
		c.byLabel = newByLabel
	}
	return changed
}
