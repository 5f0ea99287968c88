package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply queued on a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCall is one request seen by a MockProvider together with the
// labels its context carried.
type MockCall struct {
	Request
	Purpose string
	Trace   string
}

// MockProvider replays queued responses in order. An exhausted queue
// behaves like an unreachable provider.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{
		Request: req,
		Purpose: PurposeFrom(ctx),
		Trace:   TraceFrom(ctx),
	})

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many requests reached the provider.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending reports how many queued responses have not been consumed.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
