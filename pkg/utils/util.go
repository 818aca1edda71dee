package utils

import (
	"log/slog"
	"math"
)

// DereferenceSeed は、シード値のポインタを安全にデリファレンスします。
// ポインタがnilの場合は0を返します。
func DereferenceSeed(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// SeedToPtrInt32 は *int64 を Gemini SDK 用の *int32 に変換します。
// int32 の範囲外の値は警告を出して破棄し、nil (ランダム) として扱います。
func SeedToPtrInt32(seed *int64) *int32 {
	if seed == nil {
		return nil
	}
	if *seed < math.MinInt32 || *seed > math.MaxInt32 {
		slog.Warn("シード値が int32 の範囲外のため無視します", "seed", *seed)
		return nil
	}
	v := int32(*seed)
	return &v
}
