package generator

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-graffiti-kit/pkg/utils"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenAIClient は genai SDK を使って GenerativeModel を実装します。
type GenAIClient struct {
	client *genai.Client
}

// ClientConfig は GenAIClient の接続設定です。API キーはプロセス起動時に一度だけ渡します。
type ClientConfig struct {
	APIKey  string
	BaseURL string // 空の場合は SDK の既定値
}

// NewGenAIClient は Gemini API 用のクライアントを作成します。
func NewGenAIClient(ctx context.Context, cfg ClientConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIClient{client: client}, nil
}

// GenerateWithParts はパーツ群を1つのユーザーコンテンツとして送信します。
func (c *GenAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
		Seed:               utils.SeedToPtrInt32(opts.Seed),
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
