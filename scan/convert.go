package scan

import (
	"github.com/parquet-go/parquet-go"

	"github.com/dot5enko/parquet-vtab/ptype"
)

func materializeInt(col *ptype.Column, v parquet.Value) int64 {
	if col.IsInt96 {
		return int96Millis(extractInt96Words(v))
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return int64(v.Int32())
	default:
		return v.Int64()
	}
}

func materializeDouble(v parquet.Value) float64 {
	if v.Kind() == parquet.Float {
		return float64(v.Float())
	}
	return v.Double()
}

func materializeBytes(v parquet.Value) []byte {
	b := v.ByteArray()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
