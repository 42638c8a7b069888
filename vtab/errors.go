// Package vtab adapts the scan engine to go-sqlite3's Module/VTab/
// VTabCursor ABI. Grounded in original_source/parquet/parquet.cc's
// sqlite3_module struct and go-sqlite3's own vtab callback shapes; no
// host error codes or pointers leak past this package's boundary into
// scan/rowfilter/rowgroupfilter/ptype, per the top-level design note
// "no raw host pointers leak into the core".
package vtab

import "fmt"

// InvalidArgsError reports a malformed "CREATE VIRTUAL TABLE ... USING
// parquet(...)" invocation -- missing or unusable path argument.
type InvalidArgsError struct {
	Args []string
	Why  string
}

func (e *InvalidArgsError) Error() string {
	return fmt.Sprintf("vtab: invalid arguments %v: %s", e.Args, e.Why)
}
