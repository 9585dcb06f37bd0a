package table

import (
	"sort"

	"github.com/dbohdan/memdb/ast"
)

// planAndScan implements the ordered-index query planner: it gathers an
// IndexRange for every condition an ordered index can serve (skipping
// NE, which no single contiguous range can express), merges ranges
// sharing the same index by intersection, picks the narrowest resulting
// range, and falls back to a full table scan when no condition could be
// planned. Every candidate row, whichever source produced it, is
// re-checked against the complete condition list before being included
// — the planner only narrows the search space, it never trusts a range
// alone.
func (t *Table) planAndScan(conditions []ast.Condition) ([]int, error) {
	ranges, usedIndex, err := t.gatherRanges(conditions)
	if err != nil {
		return nil, err
	}

	if len(ranges) == 0 {
		return t.fullScan(conditions)
	}

	best := ranges[0]
	for _, r := range ranges[1:] {
		if r.Size() < best.Size() {
			best = r
		}
	}

	var matched []int
	for i := best.Begin; i < best.End; i++ {
		row := best.Index.Perm[i]
		ok, err := t.rowMatches(row, conditions)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	if usedIndex {
		sort.Ints(matched)
	}
	return matched, nil
}

// gatherRanges claims every non-NE condition whose column carries an
// ordered index and computes its range; ranges on the same index across
// multiple claimed conditions are intersected (max of begins, min of
// ends), leaving at most one range per index.
func (t *Table) gatherRanges(conditions []ast.Condition) ([]IndexRange, bool, error) {
	byIndexCol := make(map[int]IndexRange)
	claimedAny := false

	for _, cond := range conditions {
		if cond.Op == ast.RelNE {
			continue
		}
		ci, ok := t.mapping[cond.Column]
		if !ok {
			return nil, false, &UnknownColumnError{Name: cond.Column}
		}
		idx, ok := t.HasOrderedIndex(ci)
		if !ok {
			continue
		}
		r, err := t.rangeFor(idx, cond)
		if err != nil {
			return nil, false, err
		}
		claimedAny = true
		if existing, ok := byIndexCol[idx.Col]; ok {
			r = intersect(existing, r)
		}
		byIndexCol[idx.Col] = r
	}

	ranges := make([]IndexRange, 0, len(byIndexCol))
	for _, r := range byIndexCol {
		ranges = append(ranges, r)
	}
	return ranges, claimedAny, nil
}

func intersect(a, b IndexRange) IndexRange {
	begin := a.Begin
	if b.Begin > begin {
		begin = b.Begin
	}
	end := a.End
	if b.End < end {
		end = b.End
	}
	if end < begin {
		end = begin
	}
	return IndexRange{Index: a.Index, Begin: begin, End: end}
}

// rangeFor computes the [Begin,End) span of idx's permutation satisfying
// a single relational condition. NE is never passed in here: callers
// filter it out before it can reach an index, since no contiguous range
// expresses "not equal to".
func (t *Table) rangeFor(idx *OrderedIndex, cond ast.Condition) (IndexRange, error) {
	switch cond.Op {
	case ast.RelEQ:
		return IndexRange{Index: idx, Begin: t.lowerBound(idx, cond.Val), End: t.upperBound(idx, cond.Val)}, nil
	case ast.RelLT:
		return IndexRange{Index: idx, Begin: 0, End: t.lowerBound(idx, cond.Val)}, nil
	case ast.RelGT:
		return IndexRange{Index: idx, Begin: t.upperBound(idx, cond.Val), End: len(idx.Perm)}, nil
	case ast.RelLE:
		return IndexRange{Index: idx, Begin: 0, End: t.upperBound(idx, cond.Val)}, nil
	case ast.RelGE:
		return IndexRange{Index: idx, Begin: t.lowerBound(idx, cond.Val), End: len(idx.Perm)}, nil
	default:
		return IndexRange{}, &UnknownColumnError{Name: "<unreachable>"}
	}
}

func (t *Table) fullScan(conditions []ast.Condition) ([]int, error) {
	var matched []int
	for row := 0; row < t.rowCount; row++ {
		ok, err := t.rowMatches(row, conditions)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (t *Table) rowMatches(row int, conditions []ast.Condition) (bool, error) {
	for _, cond := range conditions {
		ci, ok := t.mapping[cond.Column]
		if !ok {
			return false, &UnknownColumnError{Name: cond.Column}
		}
		ok2, err := cond.Match(t.valueAt(row, ci))
		if err != nil {
			return false, err
		}
		if !ok2 {
			return false, nil
		}
	}
	return true, nil
}
