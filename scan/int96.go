package scan

import (
	"math/big"

	"github.com/parquet-go/parquet-go"
)

// julianEpochDay is the Julian day number of the Unix epoch.
const julianEpochDay = 2440588

// extractInt96Words pulls the three 32-bit words (lo, mid, hi) out of an
// INT96 value, per §4.7: the low 8 bytes (lo, mid) are the
// nanoseconds-into-day, hi is the Julian day number.
func extractInt96Words(v parquet.Value) [3]uint32 {
	i96 := v.Int96()
	return [3]uint32{i96[0], i96[1], i96[2]}
}

// int96Millis converts (lo, mid, hi) to milliseconds since the Unix
// epoch using math/big for the 128-bit-or-wider intermediate arithmetic
// the conversion needs: ((hi-2440588)*86400*1e9 + ns) / 1e6.
func int96Millis(words [3]uint32) int64 {
	ns := new(big.Int).SetUint64(uint64(words[0]) | uint64(words[1])<<32)

	days := new(big.Int).SetInt64(int64(words[2]) - julianEpochDay)
	dayNanos := new(big.Int).Mul(days, big.NewInt(86400))
	dayNanos.Mul(dayNanos, big.NewInt(1_000_000_000))

	total := new(big.Int).Add(dayNanos, ns)
	total.Quo(total, big.NewInt(1_000_000))
	return total.Int64()
}
