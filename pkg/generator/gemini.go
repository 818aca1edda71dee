package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/gemini-graffiti-kit/pkg/imgutil"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GeminiGenerator はアップロード画像をグラフィティ風に変換する生成器です。
type GeminiGenerator struct {
	imgCore      ImageExecutor
	model        string
	prompt       string
	systemPrompt string
	aspectRatio  string
	seed         *int64
}

// Option は GeminiGenerator の設定を変更します。
type Option func(*GeminiGenerator)

// WithPrompt は固定の指示文を差し替えます。
func WithPrompt(prompt string) Option {
	return func(g *GeminiGenerator) {
		if prompt != "" {
			g.prompt = prompt
		}
	}
}

// WithSystemPrompt はシステム指示を設定します。
func WithSystemPrompt(prompt string) Option {
	return func(g *GeminiGenerator) { g.systemPrompt = prompt }
}

// WithAspectRatio は出力画像のアスペクト比を指定します。
func WithAspectRatio(ratio string) Option {
	return func(g *GeminiGenerator) {
		if ratio != "" {
			g.aspectRatio = ratio
		}
	}
}

// WithSeed はシード値を固定します。
func WithSeed(seed *int64) Option {
	return func(g *GeminiGenerator) { g.seed = seed }
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
func NewGeminiGenerator(core ImageExecutor, model string, opts ...Option) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageExecutor) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	g := &GeminiGenerator{
		imgCore:     core,
		model:       model,
		prompt:      GraffitiPrompt,
		aspectRatio: DefaultAspectRatio,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateGraffiti は画像と固定の指示文を1回だけ送信し、生成画像をデータURLで返します。
// 失敗時は *GenerationError を返します。
func (g *GeminiGenerator) GenerateGraffiti(ctx context.Context, base64Image, mimeType string) (string, error) {
	return g.generate(ctx, g.newRequest(base64Image, mimeType))
}

// newRequest は設定済みのオプションとヘッダーを除いたペイロードから要求を組み立てます。
func (g *GeminiGenerator) newRequest(base64Image, mimeType string) domain.GenerationRequest {
	return domain.GenerationRequest{
		Prompt:       g.prompt,
		SystemPrompt: g.systemPrompt,
		AspectRatio:  g.aspectRatio,
		ImageBase64:  base64Image,
		MIMEType:     mimeType,
		Seed:         g.seed,
	}
}

func (g *GeminiGenerator) generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	imgPart, err := g.imgCore.PrepareInlinePart(req.ImageBase64, req.MIMEType)
	if err != nil {
		slog.ErrorContext(ctx, "入力画像の準備に失敗しました", "kind", kindOf(err), "error", err)
		return "", err
	}

	parts := []*genai.Part{
		imgPart,
		{Text: req.Prompt},
	}

	opts := gemini.GenerateOptions{
		AspectRatio:  req.AspectRatio,
		SystemPrompt: req.SystemPrompt,
		Seed:         req.Seed,
	}

	slog.InfoContext(ctx, "Geminiに画像生成をリクエストします", "model", g.model, "aspect_ratio", req.AspectRatio, "mime_type", req.MIMEType)
	resp, err := g.imgCore.ExecuteRequest(ctx, g.model, parts, opts)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini画像生成エラー", "model", g.model, "kind", kindOf(err), "error", err)
		return "", err
	}

	resultMIME := resp.MimeType
	if resultMIME == "" {
		resultMIME = DefaultResultMIMEType
	}
	slog.InfoContext(ctx, "画像を受信しました", "mime_type", resultMIME, "size", len(resp.Data))

	return imgutil.EncodeDataURL(resultMIME, resp.Data), nil
}
