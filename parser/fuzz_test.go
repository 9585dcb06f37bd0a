package parser_test

import (
	"testing"

	"github.com/dbohdan/memdb/parser"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		`create table t ( a : int )`,
		`create table t ( { auto, key } a : int, b : string[8] = "x" )`,
		`insert ( 1, "x", true ) to t`,
		`insert ( a = 1, b = "x" ) to t`,
		`create ordered index on t by a`,
		`create unordered index on t by b`,
		`select * from t`,
		`select a, b from t where a = 1 && b != "x"`,
		`select a from t where (a + 1) * 2 > 10 || !c`,
		``,
		`select`,
		`create table (`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, query string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Parse panicked on %q: %v", query, r)
			}
		}()
		_, _ = parser.Parse(query)
	})
}
