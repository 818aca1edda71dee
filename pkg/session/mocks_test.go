package session

import (
	"context"
	"sync"
)

// mockGenerator は GenerateGraffiti の呼び出しを記録し、release が閉じられるまで待機できます。
type mockGenerator struct {
	mu       sync.Mutex
	calls    int
	payloads []string
	mimes    []string

	started chan struct{}
	release chan struct{}
	result  string
	err     error
}

func (m *mockGenerator) GenerateGraffiti(ctx context.Context, base64Image, mimeType string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.payloads = append(m.payloads, base64Image)
	m.mimes = append(m.mimes, mimeType)
	started, release := m.started, m.release
	m.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.result, m.err
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
