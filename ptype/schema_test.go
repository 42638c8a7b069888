package ptype

import (
	"testing"

	"github.com/parquet-go/parquet-go"
)

type flatRow struct {
	Active bool    `parquet:"active"`
	ID     int32   `parquet:"id"`
	Big    int64   `parquet:"big"`
	Ratio  float32 `parquet:"ratio"`
	Score  float64 `parquet:"score"`
	Name   string  `parquet:"name"`
	Raw    []byte  `parquet:"raw"`
}

type nestedRow struct {
	ID    int32 `parquet:"id"`
	Inner struct {
		X int32 `parquet:"x"`
	} `parquet:"inner"`
}

func TestMapSchemaFlat(t *testing.T) {
	schema := parquet.SchemaOf(flatRow{})
	table, err := MapSchema(schema)
	if err != nil {
		t.Fatalf("MapSchema: %v", err)
	}

	want := map[string]Kind{
		"active": KindBool,
		"id":     KindInt,
		"big":    KindInt,
		"ratio":  KindDouble,
		"score":  KindDouble,
		"name":   KindText,
		"raw":    KindBlob,
	}
	if len(table.Columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(table.Columns), len(want))
	}
	for _, c := range table.Columns {
		k, ok := want[c.Name]
		if !ok {
			t.Fatalf("unexpected column %q", c.Name)
		}
		if c.Kind != k {
			t.Errorf("column %q: Kind = %v, want %v", c.Name, c.Kind, k)
		}
	}
}

func TestMapSchemaRejectsNested(t *testing.T) {
	schema := parquet.SchemaOf(nestedRow{})
	if _, err := MapSchema(schema); err == nil {
		t.Fatalf("expected UnsupportedSchemaError for nested column")
	} else if _, ok := err.(*UnsupportedSchemaError); !ok {
		t.Fatalf("expected *UnsupportedSchemaError, got %T: %v", err, err)
	}
}

func TestCreateTableSQLQuoting(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: `weird"name`, SQLType: "TEXT"},
		{Name: "id", SQLType: "INT"},
	}}
	got := CreateTableSQL("my_table", table)
	want := `CREATE TABLE "my_table"("weird""name" TEXT, "id" INT)`
	if got != want {
		t.Fatalf("CreateTableSQL() = %q, want %q", got, want)
	}
}

func TestErrTooManyColumns(t *testing.T) {
	err := &ErrTooManyColumns{Count: MaxColumns + 1}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error message")
	}
}
