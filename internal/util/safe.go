package util

import "math"

// SafeInt64Diff guards the runtime counters main.go's process-stats
// reporting formats against underflow; SafeInt32 narrows integer tool
// arguments (edit_file's line_number) without wrapping.

// SafeInt64Diff returns u1-u2 as an int64, clamped to 0 when the
// subtraction would underflow or the result can't fit an int64. Used to
// derive a net-allocations count from the cumulative malloc/free counters
// runtime.MemStats reports as uint64.
func SafeInt64Diff(u1, u2 uint64) int64 {
	if u1 < u2 {
		return 0
	}
	diff := u1 - u2
	if diff > math.MaxInt64 {
		return 0
	}
	return int64(diff)
}

// SafeInt32 narrows value to the int32 range, clamping rather than
// wrapping when it falls outside math.MinInt32..math.MaxInt32.
func SafeInt32(value int64) int32 {
	switch {
	case value < math.MinInt32:
		return math.MinInt32
	case value > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(value)
	}
}
