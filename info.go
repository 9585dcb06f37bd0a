package memdb

import (
	"fmt"
	"io"
)

// Info writes a one-line-per-table summary (1-indexed position, name,
// column count, row count) in table-name order. Grounded on the
// original engine's database info dump, restored here as a
// supplemented feature.
func (db *Database) Info(w io.Writer) error {
	names := db.TableNames()
	if _, err := fmt.Fprintf(w, "%d table(s)\n", len(names)); err != nil {
		return err
	}
	for i, name := range names {
		t := db.tables[name]
		_, err := fmt.Fprintf(w, "%d. %s: %d column(s), %d row(s)\n",
			i+1, name, len(t.Columns()), t.RowCount())
		if err != nil {
			return err
		}
	}
	return nil
}
