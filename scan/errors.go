package scan

import "errors"

// ErrCorruptParquet marks fatal decode failures: a column scanner that
// runs out of values or pages when the row group's declared row count
// still expected one, or an unknown physical type encountered mid-scan
// (the file changed on disk after connect). Wrapped with context via
// fmt.Errorf("%w: ...", ErrCorruptParquet, ...).
var ErrCorruptParquet = errors.New("scan: corrupt parquet file")

// ErrOutOfMemory is scan's half of the checked allocation-bound analogue
// discussed in the top-level design notes: exceeding MaxRowGroups before
// any large allocation, rather than relying on an unrecoverable Go
// runtime OOM.
var ErrOutOfMemory = errors.New("scan: row group count exceeds MaxRowGroups")

// MaxRowGroups bounds the number of row groups a connected file may
// have, mirroring ptype.MaxColumns.
const MaxRowGroups = 1 << 20
