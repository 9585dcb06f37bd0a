package table

import (
	"io"

	"github.com/dbohdan/memdb/schema"
	"github.com/dbohdan/memdb/wire"
)

// Save writes t's full on-disk representation: column count and
// descriptors, row count and raw row bytes, ordered-index count and
// each index's column and permutation vector, then the hash-indexed
// column list (hash indices are small to rebuild and are not persisted
// as serialized maps).
func (t *Table) Save(w io.Writer) error {
	if err := wire.WriteString(w, t.Name); err != nil {
		return err
	}
	if err := wire.WriteUint64(w, uint64(len(t.columns))); err != nil {
		return err
	}
	for _, c := range t.columns {
		if err := c.Save(w); err != nil {
			return err
		}
	}

	if err := wire.WriteUint64(w, uint64(t.rowCount)); err != nil {
		return err
	}
	if _, err := w.Write(t.storage[:t.rowCount*t.rowSize]); err != nil {
		return err
	}

	if err := wire.WriteUint64(w, uint64(len(t.orderedIndices))); err != nil {
		return err
	}
	for _, idx := range t.orderedIndices {
		if err := wire.WriteUint64(w, uint64(idx.Col)); err != nil {
			return err
		}
		if err := wire.WriteUint64(w, uint64(len(idx.Perm))); err != nil {
			return err
		}
		for _, r := range idx.Perm {
			if err := wire.WriteUint64(w, uint64(r)); err != nil {
				return err
			}
		}
	}

	if err := wire.WriteUint64(w, uint64(len(t.hashIndices))); err != nil {
		return err
	}
	for _, h := range t.hashIndices {
		if err := wire.WriteUint64(w, uint64(h.Col)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a Table written by Save.
func Load(r io.Reader) (*Table, error) {
	name, err := wire.ReadString(r)
	if err != nil {
		return nil, err
	}

	numCols, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	cols := make([]schema.Column, numCols)
	mapping := make(map[string]int, numCols)
	rowSize := 0
	for i := range cols {
		c, err := schema.LoadColumn(r)
		if err != nil {
			return nil, err
		}
		cols[i] = c
		mapping[c.Name] = i
		rowSize += int(c.Size)
	}

	rowCount, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}

	capacity := initialCapacity
	for capacity < int(rowCount) {
		capacity *= 2
	}
	storage := make([]byte, capacity*rowSize)
	if rowCount > 0 {
		if _, err := io.ReadFull(r, storage[:int(rowCount)*rowSize]); err != nil {
			return nil, err
		}
	}

	t := &Table{
		Name:     name,
		columns:  cols,
		mapping:  mapping,
		rowSize:  rowSize,
		rowCount: int(rowCount),
		capacity: capacity,
		storage:  storage,
	}

	numOrdered, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numOrdered; i++ {
		col, err := wire.ReadUint64(r)
		if err != nil {
			return nil, err
		}
		n, err := wire.ReadUint64(r)
		if err != nil {
			return nil, err
		}
		perm := make([]int, n)
		for j := range perm {
			v, err := wire.ReadUint64(r)
			if err != nil {
				return nil, err
			}
			perm[j] = int(v)
		}
		t.orderedIndices = append(t.orderedIndices, &OrderedIndex{Col: int(col), Perm: perm})
	}

	numHash, err := wire.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numHash; i++ {
		col, err := wire.ReadUint64(r)
		if err != nil {
			return nil, err
		}
		h := newHashIndex(int(col))
		for row := 0; row < t.rowCount; row++ {
			h.add(t.valueAt(row, int(col)), row)
		}
		t.hashIndices = append(t.hashIndices, h)
	}

	return t, nil
}
