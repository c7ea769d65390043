package query

import "context"

// MockClient permite tests sin llamar al servicio remoto real.
type MockClient struct {
	Response string
	Err      error
}

func (m *MockClient) Ask(ctx context.Context, query string) (string, error) {
	return m.Response, m.Err
}
