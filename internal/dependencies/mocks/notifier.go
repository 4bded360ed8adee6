package mocks

import (
	"context"
	"sync"
)

// SentReset records a single password reset delivery
type SentReset struct {
	Email string
	Token string
}

// MockNotifier captures password reset deliveries for test inspection
type MockNotifier struct {
	mu   sync.Mutex
	sent []SentReset
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendPasswordReset records the delivery instead of sending it
func (m *MockNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentReset{Email: email, Token: token})
	return nil
}

// Sent returns all recorded deliveries
func (m *MockNotifier) Sent() []SentReset {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentReset, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastToken returns the token from the most recent delivery, or ""
func (m *MockNotifier) LastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].Token
}
