package generator

import (
	"fmt"
)

// GeminiImageCore は ImageExecutor の責務を担う基盤クラスです。
// 入力画像のパーツ化、Gemini への送信、応答の解析を行います。
type GeminiImageCore struct {
	aiClient           GenerativeModel
	compress           bool
	compressionQuality int
}

// CoreOption は GeminiImageCore の挙動を変更します。
type CoreOption func(*GeminiImageCore)

// WithCompression は送信前に入力画像を JPEG に圧縮します。
func WithCompression(quality int) CoreOption {
	return func(c *GeminiImageCore) {
		c.compress = true
		if quality > 0 && quality <= 100 {
			c.compressionQuality = quality
		}
	}
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
func NewGeminiImageCore(aiClient GenerativeModel, opts ...CoreOption) (*GeminiImageCore, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}

	c := &GeminiImageCore{
		aiClient:           aiClient,
		compressionQuality: ImageCompressionQuality,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}
