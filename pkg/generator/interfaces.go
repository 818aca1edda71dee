package generator

import (
	"context"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenerativeModel は Gemini との通信を抽象化するインターフェースです。
// 画像生成に必要な GenerateWithParts のみを要求します。
type GenerativeModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ImageGenerator はビジネスロジック層が利用する統合窓口です。
type ImageGenerator interface {
	// GenerateGraffiti は base64 エンコード済みの画像を送信し、生成画像のデータURLを返します。
	GenerateGraffiti(ctx context.Context, base64Image, mimeType string) (string, error)
}

// ImageExecutor は、画像生成リクエストを処理し、画像関連データを準備するためのメソッドを定義するインターフェースです。
type ImageExecutor interface {
	// ExecuteRequest は、指定されたパラメータで画像生成リクエストを実行し、結果を返します。
	ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*domain.ImageResponse, error)
	// PrepareInlinePart は、base64 文字列から送信用の InlineData パーツを作成します。
	PrepareInlinePart(base64Image, mimeType string) (*genai.Part, error)
}
