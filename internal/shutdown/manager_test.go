package shutdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ordinal-complexity/internal/logger"
	"ordinal-complexity/internal/shutdown"
)

func TestManager_ShutdownOrderAndCancel(t *testing.T) {
	t.Parallel()

	m := shutdown.NewManager(context.Background(), logger.Nop{})

	var order []string
	m.Register(shutdown.Func(func() { order = append(order, "first") }))
	m.Register(shutdown.Func(func() { order = append(order, "second") }))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.ErrorIs(t, m.Context().Err(), context.Canceled)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestManager_ComponentTimeout(t *testing.T) {
	t.Parallel()

	m := shutdown.NewManager(context.Background(), logger.Nop{})
	m.SetComponentTimeout(20 * time.Millisecond)

	block := make(chan struct{})
	defer close(block)
	m.Register(shutdown.Func(func() { <-block }))

	start := time.Now()
	m.Shutdown()
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestManager_ParentCancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	m := shutdown.NewManager(parent, logger.Nop{})
	cancel()

	assert.ErrorIs(t, m.Context().Err(), context.Canceled)
	m.Shutdown()
}
