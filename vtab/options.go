package vtab

import "os"

// Options configures the module's behavior across every connected
// table. Trace is read from SQLITE_PARQUET_TRACE at Connect time, the
// same opt-in env-var pattern the top-level design notes describe for
// scan.Cursor.SetTrace.
type Options struct {
	Trace bool
}

func OptionsFromEnv() Options {
	return Options{Trace: os.Getenv("SQLITE_PARQUET_TRACE") == "1"}
}
