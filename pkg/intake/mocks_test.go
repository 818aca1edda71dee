package intake

import "context"

type mockHTTPClient struct {
	data    []byte
	err     error
	lastURL string
	called  bool
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.called = true
	m.lastURL = url
	return m.data, m.err
}
