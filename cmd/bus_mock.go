package cmd

import (
	"sync"

	"github.com/anicoll/taspromto/internal/pkg/mqtt"
)

// MockBusService is a mock implementation of the BusService interface.
type MockBusService struct {
	ConnectFunc   func() error
	SubscribeFunc func(topic string, handler mqtt.Handler) error
	PublishFunc   func(topic string, body string) error

	mu          sync.Mutex
	subscribed  []string
	handlers    map[string]mqtt.Handler
	published   []string
	disconnects int
}

func (m *MockBusService) Connect() error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc()
	}
	return nil
}

func (m *MockBusService) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnects++
}

func (m *MockBusService) IsConnected() bool {
	return true
}

func (m *MockBusService) Subscribe(topic string, handler mqtt.Handler) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(topic, handler)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribed = append(m.subscribed, topic)
	if m.handlers == nil {
		m.handlers = make(map[string]mqtt.Handler)
	}
	m.handlers[topic] = handler
	return nil
}

func (m *MockBusService) Publish(topic string, body string) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(topic, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, topic)
	return nil
}

// Subscribed returns a copy of the patterns subscribed so far.
func (m *MockBusService) Subscribed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.subscribed))
	copy(out, m.subscribed)
	return out
}

func (m *MockBusService) publishedTopics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.published))
	copy(out, m.published)
	return out
}
