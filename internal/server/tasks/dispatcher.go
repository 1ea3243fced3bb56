// Package tasks runs fire-and-forget side effects (session recording,
// last-login updates, notification sends) on a bounded worker pool. The
// request path only enqueues and returns; task outcomes are logged and
// never surface to the response, and failed tasks are not retried.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/logging"
)

const (
	DefaultWorkers     = 4
	DefaultQueueSize   = 64
	DefaultTaskTimeout = 30 * time.Second
)

// Task is a named unit of background work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher owns the queue and the worker pool. The queue bound is the
// backpressure mechanism: when it is full the task is dropped with a
// warning instead of blocking the request or growing without limit.
type Dispatcher struct {
	logger  logging.Logger
	timeout time.Duration
	queue   chan Task
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher starts workers goroutines draining a queue of queueSize.
// Non-positive arguments fall back to the package defaults.
func NewDispatcher(logger logging.Logger, workers, queueSize int, taskTimeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}

	d := &Dispatcher{
		logger:  logger,
		timeout: taskTimeout,
		queue:   make(chan Task, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Submit enqueues a task without blocking. It reports false when the task
// was dropped because the queue is full or the dispatcher is closed.
func (d *Dispatcher) Submit(name string, fn func(ctx context.Context) error) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn(context.Background(), "background task dropped: dispatcher closed", "task", name)
		return false
	}

	select {
	case d.queue <- Task{Name: name, Run: fn}:
		return true
	default:
		d.logger.Warn(context.Background(), "background task dropped: queue full", "task", name)
		return false
	}
}

// Close stops accepting tasks and waits for in-flight and queued work to
// drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.queue {
		d.runTask(task)
	}
}

// runTask is the error boundary: panics and errors stay inside the worker.
func (d *Dispatcher) runTask(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error(ctx, "background task panicked", "task", task.Name, "panic", p)
		}
	}()

	if err := task.Run(ctx); err != nil {
		d.logger.Error(ctx, "background task failed", "task", task.Name, "error", err.Error())
	}
}
