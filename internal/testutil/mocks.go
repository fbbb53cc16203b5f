package testutil

import (
	"context"
	"posterd/internal/models"
	"posterd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockGateway implements gateway.GatewayInterface with injectable behavior.
type MockGateway struct {
	mu       sync.Mutex
	Calls    []RenderCall
	RenderFn func(ctx context.Context, version int, layers map[string]any) (*models.RenderResult, error)
}

type RenderCall struct {
	Version int
	Layers  map[string]any
}

func (m *MockGateway) Render(ctx context.Context, version int, layers map[string]any) (*models.RenderResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, RenderCall{Version: version, Layers: layers})
	m.mu.Unlock()

	if m.RenderFn != nil {
		return m.RenderFn(ctx, version, layers)
	}
	return &models.RenderResult{
		URL:             "https://example.com/poster-preview.jpg",
		Status:          "success",
		TemplateVersion: version,
		MockGeneration:  true,
	}, nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts renders
// by "mode/outcome".
type MockMetrics struct {
	mu      sync.Mutex
	Renders map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Renders: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveRenderDuration(_ string, _ time.Duration)  {}

func (m *MockMetrics) IncRendersTotal(mode, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renders[mode+"/"+outcome]++
}
