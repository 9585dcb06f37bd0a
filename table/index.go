package table

import (
	"sort"

	"github.com/dbohdan/memdb/value"
)

// OrderedIndex maintains a permutation of row numbers sorted by one
// column's value, enabling binary-search range queries on that column.
type OrderedIndex struct {
	Col  int
	Perm []int
}

// IndexRange is a contiguous slice [Begin, End) of an OrderedIndex's
// permutation: the rows (in index order, not insertion order) that
// satisfy one planned condition.
type IndexRange struct {
	Index *OrderedIndex
	Begin int
	End   int
}

// Size reports the number of rows the range covers.
func (r IndexRange) Size() int { return r.End - r.Begin }

func (t *Table) valueCompare(col, rowA, rowB int) int {
	a := t.valueAt(rowA, col)
	b := t.valueAt(rowB, col)
	c, _ := value.Compare(a, b)
	return c
}

// newOrderedIndex builds an identity permutation over the table's
// current rows and sorts it by col.
func (t *Table) newOrderedIndex(col int) *OrderedIndex {
	idx := &OrderedIndex{Col: col, Perm: make([]int, t.rowCount)}
	for i := range idx.Perm {
		idx.Perm[i] = i
	}
	t.sortIndex(idx)
	return idx
}

func (t *Table) sortIndex(idx *OrderedIndex) {
	sort.SliceStable(idx.Perm, func(i, j int) bool {
		return t.valueCompare(idx.Col, idx.Perm[i], idx.Perm[j]) < 0
	})
}

// insertIntoIndex splices newRow into idx, keeping it sorted. Callers
// with an autoincrement column skip this and append directly, since an
// autoincrement value is monotonically increasing by construction.
func (t *Table) insertIntoIndex(idx *OrderedIndex, newRow int) {
	pos := sort.Search(len(idx.Perm), func(i int) bool {
		return t.valueCompare(idx.Col, idx.Perm[i], newRow) > 0
	})
	idx.Perm = append(idx.Perm, 0)
	copy(idx.Perm[pos+1:], idx.Perm[pos:])
	idx.Perm[pos] = newRow
}

func (t *Table) appendToIndex(idx *OrderedIndex, newRow int) {
	idx.Perm = append(idx.Perm, newRow)
}

// lowerBound returns the first position in idx whose row's value is >=
// val.
func (t *Table) lowerBound(idx *OrderedIndex, val value.Scalar) int {
	return sort.Search(len(idx.Perm), func(i int) bool {
		c, _ := value.Compare(t.valueAt(idx.Perm[i], idx.Col), val)
		return c >= 0
	})
}

// upperBound returns the first position in idx whose row's value is >
// val.
func (t *Table) upperBound(idx *OrderedIndex, val value.Scalar) int {
	return sort.Search(len(idx.Perm), func(i int) bool {
		c, _ := value.Compare(t.valueAt(idx.Perm[i], idx.Col), val)
		return c > 0
	})
}

// HashIndex accelerates equality lookups and uniqueness checks for a
// column with no ordering requirement.
type HashIndex struct {
	Col int
	m   map[string][]int
}

func newHashIndex(col int) *HashIndex {
	return &HashIndex{Col: col, m: make(map[string][]int)}
}

func hashKey(v value.Scalar) string {
	return string(rune(v.Kind())) + string(value.FromScalar(v).Raw())
}

func (h *HashIndex) add(v value.Scalar, row int) {
	k := hashKey(v)
	h.m[k] = append(h.m[k], row)
}

func (h *HashIndex) rows(v value.Scalar) []int { return h.m[hashKey(v)] }
