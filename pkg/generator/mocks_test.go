package generator

import (
	"context"

	"github.com/shouni/gemini-graffiti-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	calls     int
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions

	generateWithPartsFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.generateWithPartsFunc != nil {
		return m.generateWithPartsFunc(ctx, model, parts, opts)
	}
	return responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("fake")}}), nil
}

type mockImageCore struct {
	prepareFunc func(base64Image, mimeType string) (*genai.Part, error)
	executeFunc func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*domain.ImageResponse, error)
}

func (m *mockImageCore) PrepareInlinePart(base64Image, mimeType string) (*genai.Part, error) {
	if m.prepareFunc != nil {
		return m.prepareFunc(base64Image, mimeType)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: []byte("in")}}, nil
}

func (m *mockImageCore) ExecuteRequest(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*domain.ImageResponse, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, model, parts, opts)
	}
	return nil, nil
}

// responseWithParts は最初の候補に parts を持つ応答を組み立てます。
func responseWithParts(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: parts},
			}},
		},
	}
}
