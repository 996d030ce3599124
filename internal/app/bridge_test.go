package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/resmon/internal/models"
	"github.com/watchfire-io/resmon/internal/tray"
)

type bridgeFixture struct {
	bridge   *eventBridge
	events   chan tray.MenuEvent
	shutdown chan struct{}
	host     *fakeHost
	sink     *captureSink
	worker   *worker
}

func startBridge(t *testing.T, retryDelayMs uint64) *bridgeFixture {
	t.Helper()
	cfg := models.NewConfig()
	cfg.Timing.TrayErrorRetryDelayMs = retryDelayMs

	f := &bridgeFixture{
		events:   make(chan tray.MenuEvent, 8),
		shutdown: make(chan struct{}),
		host:     &fakeHost{},
		sink:     &captureSink{},
	}
	f.bridge = &eventBridge{
		events:   f.events,
		ids:      tray.IDMap{settingsID: tray.ActionSettings, quitID: tray.ActionQuit},
		queue:    newCommandQueue(),
		store:    NewConfigStore(*cfg),
		host:     f.host,
		shutdown: f.shutdown,
		log:      f.sink.Logger(),
	}
	f.worker = spawn(f.bridge.run)
	t.Cleanup(func() {
		select {
		case <-f.shutdown:
		default:
			close(f.shutdown)
		}
		f.worker.join()
	})
	return f
}

func (f *bridgeFixture) exited() bool {
	select {
	case <-f.worker.done:
		return true
	default:
		return false
	}
}

func TestBridgeForwardsCommandsInOrder(t *testing.T) {
	f := startBridge(t, 50)

	f.events <- tray.MenuEvent{ID: "unknown"}
	f.events <- tray.MenuEvent{ID: settingsID}
	f.events <- tray.MenuEvent{ID: settingsID}

	require.Eventually(t, func() bool { return f.host.calls().repaints == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []Command{CommandShowSettings, CommandShowSettings}, f.bridge.queue.Drain())
	assert.False(t, f.exited())
}

func TestBridgeExitsAfterQuit(t *testing.T) {
	f := startBridge(t, 50)

	f.events <- tray.MenuEvent{ID: quitID}
	select {
	case <-f.worker.done:
	case <-time.After(time.Second):
		t.Fatal("bridge still running after quit")
	}
	assert.Equal(t, []Command{CommandQuit}, f.bridge.queue.Drain())
	assert.Equal(t, 1, f.host.calls().repaints)
}

func TestBridgeNoRepaintWhenQueueReleased(t *testing.T) {
	f := startBridge(t, 50)
	f.bridge.queue.Close()

	f.events <- tray.MenuEvent{ID: settingsID}
	require.Eventually(t, func() bool { return f.sink.has("ERROR:Failed to forward menu command") }, time.Second, 5*time.Millisecond)
	assert.Zero(t, f.host.calls().repaints)
}

func TestBridgeObservesShutdownQuickly(t *testing.T) {
	f := startBridge(t, 10000)
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	close(f.shutdown)
	f.worker.join()
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestBridgeSurvivesClosedEventSource(t *testing.T) {
	f := startBridge(t, 50)
	close(f.events)

	require.Eventually(t, func() bool { return f.sink.has("ERROR:Menu events will no longer be delivered") }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * maxPollDelay)
	assert.False(t, f.exited(), "bridge must keep observing shutdown")

	close(f.shutdown)
	f.worker.join()
}

func TestPollDelayClamp(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, minPollDelay},
		{20 * time.Millisecond, 20 * time.Millisecond},
		{10 * time.Second, maxPollDelay},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pollDelay(tt.in), "pollDelay(%s)", tt.in)
	}
}

func TestWorkerRecoversPanic(t *testing.T) {
	w := spawn(func() { panic("kaboom") })
	assert.Equal(t, "kaboom", w.join())

	w = spawn(func() {})
	assert.Nil(t, w.join())
}
