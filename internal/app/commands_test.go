package app

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandQueueFIFO(t *testing.T) {
	q := newCommandQueue()
	assert.Empty(t, q.Drain())

	for _, cmd := range []Command{CommandShowSettings, CommandShowSettings, CommandQuit} {
		require.NoError(t, q.Push(cmd))
	}
	assert.Equal(t, []Command{CommandShowSettings, CommandShowSettings, CommandQuit}, q.Drain())
	assert.Empty(t, q.Drain(), "drain empties the queue")
}

func TestCommandQueueClosed(t *testing.T) {
	q := newCommandQueue()
	require.NoError(t, q.Push(CommandShowSettings))
	q.Close()

	assert.ErrorIs(t, q.Push(CommandQuit), ErrQueueClosed)
	assert.Empty(t, q.Drain())
	q.Close()
}

func TestCommandQueueConcurrentProducers(t *testing.T) {
	q := newCommandQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = q.Push(CommandShowSettings)
			}
		}()
	}

	var got []Command
	for len(got) < 800 {
		got = append(got, q.Drain()...)
	}
	wg.Wait()
	assert.Len(t, append(got, q.Drain()...), 800)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "show_settings", CommandShowSettings.String())
	assert.Equal(t, "quit", CommandQuit.String())
	assert.Equal(t, "unknown", Command(42).String())
}
