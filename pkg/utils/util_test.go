package utils

import (
	"math"
	"testing"
)

func TestDereferenceSeed(t *testing.T) {
	t.Run("nil の場合は 0 を返す", func(t *testing.T) {
		if got := DereferenceSeed(nil); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("int64 の値をそのまま返す", func(t *testing.T) {
		var v int64 = math.MaxInt64
		if got := DereferenceSeed(&v); got != v {
			t.Errorf("expected %d, got %d", v, got)
		}
	})
}

func TestSeedToPtrInt32(t *testing.T) {
	t.Run("nil は nil のまま返す", func(t *testing.T) {
		if SeedToPtrInt32(nil) != nil {
			t.Error("nil は nil のまま返すべき")
		}
	})

	t.Run("範囲内の値は変換される", func(t *testing.T) {
		for _, val := range []int64{999, math.MaxInt32, math.MinInt32} {
			got := SeedToPtrInt32(&val)
			if got == nil || int64(*got) != val {
				t.Errorf("expected %d, got %v", val, got)
			}
		}
	})

	t.Run("範囲外の値は切り詰めずに破棄する", func(t *testing.T) {
		for _, val := range []int64{math.MaxInt32 + 1, math.MinInt32 - 1, math.MaxInt64} {
			if got := SeedToPtrInt32(&val); got != nil {
				t.Errorf("seed %d: expected nil, got %d", val, *got)
			}
		}
	})
}
