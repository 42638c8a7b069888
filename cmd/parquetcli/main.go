// parquetcli is a small demo driver for the parquet virtual table
// module: it opens an in-memory SQLite database, attaches a Parquet
// file as a virtual table, and runs one query against it, printing
// results as a simple table. Grounded in the teacher's own
// color.Yellow/color.Red status-line style (manager/update_slab_on_disk.go).
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/dot5enko/parquet-vtab/vtab"
)

func main() {
	if len(os.Args) < 3 {
		color.Red("usage: parquetcli <parquet-file> <sql-query>")
		os.Exit(2)
	}

	path := os.Args[1]
	query := os.Args[2]

	if err := run(path, query); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(path, query string) error {
	vtab.RegisterDriver("parquetcli")

	db, err := sql.Open("parquetcli", ":memory:")
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	createStmt := fmt.Sprintf("CREATE VIRTUAL TABLE scan USING parquet(%q)", path)
	if _, err := db.Exec(createStmt); err != nil {
		return fmt.Errorf("attach parquet file: %w", err)
	}
	color.Yellow("attached %s as virtual table \"scan\"", path)

	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	header := color.New(color.Bold, color.FgCyan)
	header.Println(joinHeader(cols))

	count := 0
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		fmt.Println(formatRow(vals))
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	slog.Info("query complete", "component", "parquetcli", "rows", count)
	return nil
}

func joinHeader(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += " | "
		}
		out += c
	}
	return out
}

func formatRow(vals []interface{}) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += " | "
		}
		if v == nil {
			out += "NULL"
			continue
		}
		switch x := v.(type) {
		case []byte:
			out += string(x)
		default:
			out += fmt.Sprint(x)
		}
	}
	return out
}
