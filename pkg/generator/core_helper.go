package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/gemini-graffiti-kit/pkg/imgutil"
	"github.com/shouni/gemini-graffiti-kit/pkg/utils"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ExecuteRequest は Gemini にリクエストを1回だけ送信し、応答から画像を取り出します。
// リトライは行いません。
func (c *GeminiImageCore) ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*domain.ImageResponse, error) {
	resp, err := c.aiClient.GenerateWithParts(ctx, model, parts, opts)
	if err != nil {
		return nil, newRemoteCallError(err)
	}

	out, err := c.parseToResponse(resp, utils.DereferenceSeed(opts.Seed))
	if err != nil {
		return nil, err
	}

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}

// PrepareInlinePart はヘッダーを除いた base64 文字列を InlineData パーツに変換します。
func (c *GeminiImageCore) PrepareInlinePart(base64Image, mimeType string) (*genai.Part, error) {
	data, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "invalid image payload", Err: err}
	}
	if len(data) == 0 {
		return nil, &GenerationError{Kind: KindInvalidInput, Message: "empty image payload"}
	}

	if c.compress {
		before := len(data)
		data, mimeType = imgutil.CompressPayload(data, mimeType, c.compressionQuality)
		slog.Debug("送信画像を圧縮しました", "before", before, "after", len(data), "mime_type", mimeType)
	}

	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}, nil
}

// parseToResponse は最初の候補 (Candidate) のパーツを先頭から走査し、
// 画像データを持つ最初のパーツを採用します。
func (c *GeminiImageCore) parseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, &GenerationError{Kind: KindEmptyResponse, Message: ErrNoParts.Error(), Err: ErrNoParts}
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, &GenerationError{Kind: KindEmptyResponse, Message: ErrNoParts.Error(), Err: ErrNoParts}
	}

	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &ImageOutput{Data: part.InlineData.Data, MimeType: part.InlineData.MIMEType, UsedSeed: seed}, nil
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, &GenerationError{
			Kind:    KindNoImageData,
			Message: fmt.Sprintf("%s (finish reason: %s)", ErrNoImageData.Error(), candidate.FinishReason),
			Err:     ErrNoImageData,
		}
	}

	return nil, &GenerationError{Kind: KindNoImageData, Message: ErrNoImageData.Error(), Err: ErrNoImageData}
}
