package generator

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGenAIClient(t *testing.T) {
	_, err := NewGenAIClient(context.Background(), ClientConfig{})
	assert.Error(t, err, "API キーがない場合はエラー")
}

func TestGenAIClient_GenerateWithParts(t *testing.T) {
	var gotPath, gotBody string
	imageB64 := base64.StdEncoding.EncodeToString([]byte("rendered"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPath = r.URL.Path
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[`+
			`{"text":"here you go"},`+
			`{"inlineData":{"mimeType":"image/png","data":"`+imageB64+`"}}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := NewGenAIClient(ctx, ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("letter")}},
		{Text: GraffitiPrompt},
	}
	seed := int64(7)
	resp, err := client.GenerateWithParts(ctx, DefaultModel, parts, gemini.GenerateOptions{AspectRatio: "3:4", Seed: &seed})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, DefaultModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, `"aspectRatio":"3:4"`)
	assert.Contains(t, gotBody, `"seed":7`)
	assert.Contains(t, gotBody, base64.StdEncoding.EncodeToString([]byte("letter")))

	core := &GeminiImageCore{}
	out, err := core.parseToResponse(resp, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("rendered"), out.Data)
	assert.Equal(t, "image/png", out.MimeType)
}
