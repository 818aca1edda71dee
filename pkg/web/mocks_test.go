package web

import (
	"context"
	"sync"
)

type mockGenerator struct {
	mu     sync.Mutex
	calls  int
	result string
	err    error
}

func (m *mockGenerator) GenerateGraffiti(ctx context.Context, base64Image, mimeType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.result, m.err
}
