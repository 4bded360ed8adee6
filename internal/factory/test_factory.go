package factory

import (
	"time"

	"github.com/mkaran/planetary-api/internal/dependencies/mocks"
	"github.com/mkaran/planetary-api/internal/services/auth"
	"github.com/mkaran/planetary-api/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockNotifier *mocks.MockNotifier
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockNotifier := mocks.NewMockNotifier()

	cfg := auth.DefaultConfig()
	cfg.Secret = "test-secret"

	app := newWithDependencies(store, mockClock, mockNotifier, cfg)

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockNotifier: mockNotifier,
	}
}
