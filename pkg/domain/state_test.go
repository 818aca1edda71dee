package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	upload := UploadedFile{Name: "a.png", MIMEType: "image/png", DataURL: "data:image/png;base64,AAAA"}

	tests := []struct {
		name  string
		state GenerationState
		want  StateView
	}{
		{"nil は Idle として扱う", nil, StateView{Phase: PhaseIdle}},
		{"Idle", Idle{}, StateView{Phase: PhaseIdle}},
		{"Ready", Ready{Upload: upload}, StateView{Phase: PhaseReady, HasUpload: true, Preview: upload.DataURL, FileName: "a.png"}},
		{"Generating", Generating{Upload: upload}, StateView{Phase: PhaseGenerating, HasUpload: true, Preview: upload.DataURL, FileName: "a.png", IsGenerating: true}},
		{"Succeeded", Succeeded{Upload: upload, Result: RenderedImage{DataURL: "data:image/png;base64,BBBB"}}, StateView{Phase: PhaseSucceeded, HasUpload: true, Preview: upload.DataURL, FileName: "a.png", ResultImage: "data:image/png;base64,BBBB"}},
		{"Failed", Failed{Upload: upload, Message: "boom"}, StateView{Phase: PhaseFailed, HasUpload: true, Preview: upload.DataURL, FileName: "a.png", Error: "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := View(tt.state)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Error != "" && got.ResultImage != "", "error と result が同時に設定されています")
		})
	}
}

func TestUploadOf(t *testing.T) {
	_, ok := UploadOf(Idle{})
	assert.False(t, ok)

	up, ok := UploadOf(Failed{Upload: UploadedFile{Name: "x.jpg"}, Message: "e"})
	assert.True(t, ok)
	assert.Equal(t, "x.jpg", up.Name)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "generating", PhaseGenerating.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
