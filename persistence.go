package memdb

import (
	"io"

	"github.com/dbohdan/memdb/table"
	"github.com/dbohdan/memdb/wire"
)

// SaveTo writes every table in db to w: a table count, u64-prefixed,
// followed by each table's name-prefixed Save encoding. All integers in
// the stream are fixed-width little-endian (counts pinned to u64
// regardless of host word size), so a saved database is portable
// across platforms.
func (db *Database) SaveTo(w io.Writer) error {
	names := db.TableNames()
	if err := wire.WriteUint64(w, uint64(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		if err := db.tables[name].Save(w); err != nil {
			return err
		}
	}
	return nil
}

// LoadFrom replaces db's contents with a database read back from r, as
// written by SaveTo.
func (db *Database) LoadFrom(r io.Reader) error {
	n, err := wire.ReadUint64(r)
	if err != nil {
		return err
	}
	tables := make(map[string]*table.Table, n)
	for i := uint64(0); i < n; i++ {
		t, err := table.Load(r)
		if err != nil {
			return err
		}
		tables[t.Name] = t
	}
	db.tables = tables
	return nil
}
