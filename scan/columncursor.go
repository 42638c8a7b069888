package scan

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

const columnCursorBufSize = 128

// columnCursor scans one column's values within a single row group,
// strictly forward, page at a time. It never seeks backward -- the cost
// of skipping rows the cursor doesn't materialize is paid by discarding
// values one at a time (§4.5's column(i) algorithm), not by a random
// access read.
type columnCursor struct {
	pages parquet.Pages

	reader parquet.ValueReader
	buf    []parquet.Value
	pos    int
	n      int
}

func newColumnCursor(rg parquet.RowGroup, col int) *columnCursor {
	chunk := rg.ColumnChunks()[col]
	return &columnCursor{
		pages: chunk.Pages(),
		buf:   make([]parquet.Value, columnCursorBufSize),
	}
}

// next returns the column's next value in row order. A scanner that
// runs out of pages while a value was still expected is a fatal
// ErrCorruptParquet error, per §4.5's tie-break rule.
func (cc *columnCursor) next() (parquet.Value, error) {
	for {
		if cc.pos < cc.n {
			v := cc.buf[cc.pos]
			cc.pos++
			return v, nil
		}

		if cc.reader != nil {
			n, err := cc.reader.ReadValues(cc.buf)
			if n > 0 {
				cc.n = n
				cc.pos = 0
				continue
			}
			if err != nil && err != io.EOF {
				return parquet.Value{}, fmt.Errorf("%w: reading column values: %v", ErrCorruptParquet, err)
			}
			cc.reader = nil
		}

		page, err := cc.pages.ReadPage()
		if err != nil {
			return parquet.Value{}, fmt.Errorf("%w: expected another page: %v", ErrCorruptParquet, err)
		}
		cc.reader = page.Values()
	}
}

func (cc *columnCursor) close() error {
	if cc.pages == nil {
		return nil
	}
	return cc.pages.Close()
}
