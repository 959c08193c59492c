package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ordinal-complexity/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() {
	f()
}

const DefaultComponentTimeout = 10 * time.Second

// Manager cancels the run context on SIGINT or SIGTERM and then releases
// registered components in reverse order.
type Manager struct {
	components []Shutdownable
	logger     logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	sigChan    chan os.Signal
	timeout    time.Duration
}

func NewManager(parent context.Context, log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(parent)

	return &Manager{
		components: make([]Shutdownable, 0),
		logger:     log,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		timeout:    DefaultComponentTimeout,
	}
}

// SetComponentTimeout bounds how long Shutdown waits for each component.
func (m *Manager) SetComponentTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d > 0 {
		m.timeout = d
	}
}

func (m *Manager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component)
}

// Listen cancels the context on the first interrupt. Components are released
// by the caller through Shutdown once in-flight work has returned.
func (m *Manager) Listen() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sigChan != nil {
		return
	}

	m.sigChan = make(chan os.Signal, 1)
	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)

	go func(sigChan chan os.Signal) {
		select {
		case sig := <-sigChan:
			m.logger.Warning("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.cancel()
		case <-m.done:
		}
	}(m.sigChan)
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	if m.sigChan != nil {
		signal.Stop(m.sigChan)
	}

	m.logger.Debug("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		component := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			component.Shutdown()
		}()

		select {
		case <-done:
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
				"timeout":         m.timeout.String(),
			})
		}
	}

	m.logger.Debug("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
