package ptype

import (
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// MapSchema walks a Parquet schema's leaf fields in declaration order,
// the way the teacher's schema/field.go builds one Field per on-disk
// column, and resolves each to a Column. Nested/repeated/group fields
// are rejected outright (§4.1: nested columns are a non-goal), mirroring
// the leaf-only walk of cardinalhq-lakerunner's walkParquetSchema.
func MapSchema(schema *parquet.Schema) (*Table, error) {
	fields := schema.Fields()
	if len(fields) > MaxColumns {
		return nil, &ErrTooManyColumns{Count: len(fields)}
	}

	t := &Table{Columns: make([]Column, 0, len(fields))}
	for i, f := range fields {
		col, err := mapField(i, f)
		if err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, *col)
	}
	return t, nil
}

func mapField(index int, f parquet.Field) (*Column, error) {
	if f.Repeated() || len(f.Fields()) > 0 {
		return nil, &UnsupportedSchemaError{
			ColumnIndex: index,
			ColumnName:  f.Name(),
			Physical:    "GROUP/REPEATED",
			Logical:     "-",
		}
	}

	typ := f.Type()
	kind := typ.Kind()
	logical := typ.LogicalType()

	col := &Column{Index: index, Name: f.Name()}

	switch kind {
	case parquet.Boolean:
		col.Kind = KindBool
		col.SQLType = "TINYINT"
		return col, nil

	case parquet.Int32:
		sql, ok := mapInt32Logical(logical)
		if !ok {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindInt
		col.SQLType = sql
		return col, nil

	case parquet.Int64:
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindInt
		col.SQLType = "BIGINT"
		return col, nil

	case parquet.Int96:
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindInt
		col.SQLType = "BIGINT"
		col.IsInt96 = true
		return col, nil

	case parquet.Float:
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindDouble
		col.SQLType = "REAL"
		return col, nil

	case parquet.Double:
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindDouble
		col.SQLType = "DOUBLE"
		return col, nil

	case parquet.ByteArray:
		if logical != nil && logical.UTF8 != nil {
			col.Kind = KindText
			col.SQLType = "TEXT"
			return col, nil
		}
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindBlob
		col.SQLType = "BLOB"
		return col, nil

	case parquet.FixedLenByteArray:
		if !supportedGenericLogical(logical) {
			return nil, unsupported(index, f.Name(), kind, logical)
		}
		col.Kind = KindBlob
		col.SQLType = "BLOB"
		col.FixedLen = typ.Length()
		return col, nil

	default:
		return nil, unsupported(index, f.Name(), kind, logical)
	}
}

// mapInt32Logical handles the three-way INT32 split in §4.1's table.
func mapInt32Logical(lt *format.LogicalType) (string, bool) {
	if lt == nil {
		return "INT", true
	}
	switch {
	case lt.Integer != nil && lt.Integer.BitWidth == 8 && lt.Integer.IsSigned:
		return "TINYINT", true
	case lt.Integer != nil && lt.Integer.BitWidth == 16 && lt.Integer.IsSigned:
		return "SMALLINT", true
	case lt.Integer != nil && lt.Integer.BitWidth == 32 && lt.Integer.IsSigned:
		return "INT", true
	case lt.Date != nil:
		return "INT", true
	case lt.Time != nil && lt.Time.Unit.Millis != nil:
		return "INT", true
	default:
		return "", false
	}
}

// supportedGenericLogical covers the logical types §4.1 allows for
// INT64/INT96/FLOAT/DOUBLE/BYTE_ARRAY-as-BLOB/FIXED_LEN_BYTE_ARRAY: NONE,
// or one of DATE/TIME_MILLIS/TIME_MICROS/TIMESTAMP_MILLIS/
// TIMESTAMP_MICROS/INT_64. Anything else (UINT_*, DECIMAL, ...) is
// rejected.
func supportedGenericLogical(lt *format.LogicalType) bool {
	if lt == nil {
		return true
	}
	switch {
	case lt.Date != nil:
		return true
	case lt.Time != nil && (lt.Time.Unit.Millis != nil || lt.Time.Unit.Micros != nil):
		return true
	case lt.Timestamp != nil && (lt.Timestamp.Unit.Millis != nil || lt.Timestamp.Unit.Micros != nil):
		return true
	case lt.Integer != nil && lt.Integer.BitWidth == 64 && lt.Integer.IsSigned:
		return true
	default:
		return false
	}
}

func unsupported(index int, name string, kind parquet.Kind, lt *format.LogicalType) *UnsupportedSchemaError {
	logicalName := "NONE"
	if lt != nil {
		logicalName = describeLogical(lt)
	}
	return &UnsupportedSchemaError{
		ColumnIndex: index,
		ColumnName:  name,
		Physical:    kind.String(),
		Logical:     logicalName,
	}
}

func describeLogical(lt *format.LogicalType) string {
	switch {
	case lt.UTF8 != nil:
		return "UTF8"
	case lt.Date != nil:
		return "DATE"
	case lt.Time != nil:
		return "TIME"
	case lt.Timestamp != nil:
		return "TIMESTAMP"
	case lt.Integer != nil:
		if lt.Integer.IsSigned {
			return "INT_UNKNOWN_WIDTH"
		}
		return "UINT"
	case lt.Decimal != nil:
		return "DECIMAL"
	case lt.List != nil:
		return "LIST"
	case lt.Map != nil:
		return "MAP"
	default:
		return "OTHER"
	}
}

// CreateTableSQL builds the `CREATE TABLE x(...)` DDL for a resolved
// Table, columns in Parquet order, identifiers double-quoted with
// embedded quotes doubled per §4.1. Built as a single strings.Builder
// pass, the way original_source's text accumulator assembles its DDL
// incrementally.
func CreateTableSQL(tableName string, t *Table) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(quoteIdent(tableName))
	b.WriteString("(")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(c.Name))
		b.WriteString(" ")
		b.WriteString(c.SQLType)
	}
	b.WriteString(")")
	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
