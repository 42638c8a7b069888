package vtab

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/parquet-go/parquet-go"

	"github.com/dot5enko/parquet-vtab/cache"
	"github.com/dot5enko/parquet-vtab/ptype"
	"github.com/dot5enko/parquet-vtab/scan"
)

// Module is the sqlite3.Module implementation registered under the
// "parquet" name. It is stateless across tables: each CREATE/CONNECT
// opens its own file and FileHandle, shared read-only by every cursor
// opened against that Table (§3's file-handle sharing note).
type Module struct {
	opts Options
}

func NewModule() *Module {
	return &Module{opts: OptionsFromEnv()}
}

func (m *Module) Create(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.connect(c, args)
}

func (m *Module) Connect(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.connect(c, args)
}

func (m *Module) DestroyModule() {}

func (m *Module) connect(c *sqlite3.SQLiteConn, args []string) (*Table, error) {
	// args: [moduleName, dbName, tableName, usingArg1, ...]
	if len(args) < 4 {
		return nil, &InvalidArgsError{Args: args, Why: `expected CREATE VIRTUAL TABLE t USING parquet('path')`}
	}

	path := unquoteArg(args[3])
	if path == "" {
		return nil, &InvalidArgsError{Args: args, Why: "empty path argument"}
	}
	tableName := args[2]

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	table, err := m.openTable(c, f, tableName)
	if err != nil {
		f.Close()
		return nil, err
	}
	return table, nil
}

func (m *Module) openTable(c *sqlite3.SQLiteConn, f *os.File, tableName string) (*Table, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}

	fh, err := scan.Open(pf)
	if err != nil {
		return nil, err
	}
	if fh.NumRowGroups > scan.MaxRowGroups {
		return nil, scan.ErrOutOfMemory
	}

	store := cache.NewStore(c, tableName)
	store.Create()

	ddl := ptype.CreateTableSQL(tableName, fh.Table)
	if err := c.DeclareVTab(ddl); err != nil {
		return nil, err
	}

	slog.Debug("vtab: table connected", "component", "vtab", "table", tableName, "rowGroups", fh.NumRowGroups, "rows", fh.TotalRows)

	return &Table{
		name:  tableName,
		file:  f,
		fh:    fh,
		store: store,
		opts:  m.opts,
	}, nil
}

// unquoteArg strips the single or double quoting SQLite passes through
// verbatim for USING(...) module arguments.
func unquoteArg(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
