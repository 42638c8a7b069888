package vtab

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// RegisterDriver registers a database/sql driver under driverName that
// installs the parquet virtual table module on every new connection,
// the same ConnectHook pattern used throughout the go-sqlite3 ecosystem
// to install custom modules/functions at connection time.
func RegisterDriver(driverName string) {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.CreateModule("parquet", NewModule())
		},
	})
}
