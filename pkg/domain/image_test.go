package domain

import (
	"testing"
)

func TestImageResponse_TypeConsistency(t *testing.T) {
	t.Run("生成結果のSeedがint64で保持されることを確認する", func(t *testing.T) {
		var largeSeed int64 = 9223372036854775807 // MaxInt64
		resp := ImageResponse{
			Data:     []byte{0x89, 0x50},
			MimeType: "image/png",
			UsedSeed: largeSeed,
		}

		if resp.UsedSeed != largeSeed {
			t.Errorf("大きなシード値が維持されていません: %d", resp.UsedSeed)
		}
	})
}

func TestGenerationRequest_Seed(t *testing.T) {
	t.Run("Seedがnilの場合はランダムとして扱える", func(t *testing.T) {
		req := GenerationRequest{Prompt: "graffiti", Seed: nil}
		if req.Seed != nil {
			t.Error("Seedはnilであるべきです")
		}
	})
}
