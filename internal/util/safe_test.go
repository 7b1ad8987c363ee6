package util

import (
	"math"
	"testing"
)

func TestSafeInt64Diff(t *testing.T) {
	tests := []struct {
		name   string
		u1, u2 uint64
		want   int64
	}{
		{"normal diff", 100, 40, 60},
		{"equal", 50, 50, 0},
		{"underflow clamped to zero", 10, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeInt64Diff(tt.u1, tt.u2); got != tt.want {
				t.Errorf("SafeInt64Diff(%d, %d) = %d, want %d", tt.u1, tt.u2, got, tt.want)
			}
		})
	}
}

func TestSafeInt32_ClampsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  int32
	}{
		{"in range", 42, 42},
		{"negative in range", -42, -42},
		{"above max clamps", int64(math.MaxInt32) + 1, math.MaxInt32},
		{"below min clamps", int64(math.MinInt32) - 1, math.MinInt32},
		{"huge value clamps", 1 << 40, math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeInt32(tt.value); got != tt.want {
				t.Errorf("SafeInt32(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
