package cache

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dot5enko/parquet-vtab/bitmap"
	"github.com/dot5enko/parquet-vtab/bits"
	"github.com/dot5enko/parquet-vtab/compression"
)

// lz4Threshold is the inline-vs-compressed cutoff: 64 raw bytes is 512
// row groups, below which lz4 framing overhead would dominate the
// payload. Domain-stack enrichment over the distilled spec, mirroring
// the teacher's compression/lz4.go usage for opaque block payloads.
const lz4Threshold = 64

// blob wire format, written with the teacher's bits.BitWriter
// little-endian primitives (bits/writer.go): 1 byte flag (0 = raw, 1 =
// lz4), 4 bytes uncompressed length, then the (possibly compressed)
// bitset bytes. The length prefix lets decodeBlob size its lz4 output
// buffer without guessing.
func encodeBlob(b *bitmap.Bitset) []byte {
	raw := b.Bytes()
	if len(raw) < lz4Threshold {
		return writeBlob(0, raw, raw)
	}

	var compressed bytes.Buffer
	if err := compression.CompressLz4(raw, &compressed); err != nil {
		// Fall back to raw storage rather than lose the bitmap entirely.
		return writeBlob(0, raw, raw)
	}
	return writeBlob(1, raw, compressed.Bytes())
}

func writeBlob(flag byte, raw, payload []byte) []byte {
	buf := make([]byte, 5+len(payload))
	w := bits.NewEncodeBuffer(buf, binary.LittleEndian)
	w.WriteByte(flag)
	w.PutInt32(int32(len(raw)))
	_, _ = w.Write(payload)
	return w.Bytes()
}

func decodeBlob(blob []byte, numRowGroups int) (*bitmap.Bitset, error) {
	if len(blob) < 5 {
		return nil, fmt.Errorf("cache: blob too short: %d bytes", len(blob))
	}

	r := bits.NewReader(bytes.NewReader(blob), binary.LittleEndian)
	flag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	payload := make([]byte, len(blob)-5)
	if err := r.ReadBytes(len(payload), payload); err != nil {
		return nil, err
	}

	var raw []byte
	switch flag {
	case 0:
		raw = payload
	case 1:
		decompressed, err := compression.DecompressLz4(payload, int(length))
		if err != nil {
			return nil, err
		}
		raw = decompressed
	default:
		return nil, fmt.Errorf("cache: unknown blob flag %d", flag)
	}

	bs := bitmap.NewBitset(numRowGroups)
	bs.SetBytes(raw)
	return &bs, nil
}
