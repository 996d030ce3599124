package app

import (
	"errors"
	"sync"
)

// Command is a request sent from the background goroutine to the foreground loop.
type Command int

// Commands.
const (
	CommandShowSettings Command = iota
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandShowSettings:
		return "show_settings"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ErrQueueClosed is returned when pushing to a released queue.
var ErrQueueClosed = errors.New("command queue closed")

// commandQueue is a FIFO with many producers and one consumer. Push never
// blocks and Drain never waits for producers.
type commandQueue struct {
	mu      sync.Mutex
	pending []Command
	closed  bool
}

func newCommandQueue() *commandQueue {
	return &commandQueue{}
}

// Push appends cmd. It fails once the consumer has released the queue.
func (q *commandQueue) Push(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, cmd)
	return nil
}

// Drain removes and returns all pending commands in send order.
func (q *commandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Close releases the queue. Pending commands are discarded.
func (q *commandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.pending = nil
}
