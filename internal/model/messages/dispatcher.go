package messages

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
)

const (
	defaultQueueSize   = 16
	defaultIdleTimeout = 5 * time.Minute
	defaultHandleLimit = 30 * time.Second
)

type incomingHandler interface {
	HandleIncomingMessage(ctx context.Context, msg Message) error
}

// Dispatcher runs one FIFO worker per user: messages of a user are handled strictly in order,
// different users are handled concurrently. Idle workers exit and are recreated on demand.
type Dispatcher struct {
	handler     incomingHandler
	idleTimeout time.Duration
	handleLimit time.Duration

	// base bounds the handling of every message, Close cancels it after the workers stop.
	base   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	workers map[int64]*worker
	wg      sync.WaitGroup
	done    chan struct{}
	closed  bool
}

type worker struct {
	queue   chan Message
	pending int
}

func NewDispatcher(handler incomingHandler) *Dispatcher {
	base, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		handler:     handler,
		base:        base,
		cancel:      cancel,
		idleTimeout: defaultIdleTimeout,
		handleLimit: defaultHandleLimit,
		workers:     make(map[int64]*worker),
		done:        make(chan struct{}),
	}
}

// Dispatch queues the message behind earlier messages of the same user. It never blocks:
// the message is dropped when that user's queue is full, ctx is done or the dispatcher is closed.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) bool {
	if ctx.Err() != nil {
		return false
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	w, ok := d.workers[msg.UserID]
	if !ok {
		w = &worker{queue: make(chan Message, defaultQueueSize)}
		d.workers[msg.UserID] = w
		d.wg.Add(1)
		go d.run(msg.UserID, w)
	}
	w.pending++
	d.mu.Unlock()

	select {
	case w.queue <- msg:
		return true
	default:
	}
	d.mu.Lock()
	w.pending--
	d.mu.Unlock()
	logger.Warn("user queue is full, message dropped", zap.Int64("userID", msg.UserID))
	return false
}

// Close stops accepting messages and waits for the in-flight ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.done)
	}
	d.mu.Unlock()
	d.wg.Wait()
	d.cancel()
}

func (d *Dispatcher) run(userID int64, w *worker) {
	defer d.wg.Done()

	idle := time.NewTimer(d.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case msg := <-w.queue:
			d.handle(msg)
			d.mu.Lock()
			w.pending--
			d.mu.Unlock()
			resetTimer(idle, d.idleTimeout)
		case <-idle.C:
			d.mu.Lock()
			if w.pending == 0 {
				delete(d.workers, userID)
				d.mu.Unlock()
				return
			}
			d.mu.Unlock()
			idle.Reset(d.idleTimeout)
		case <-d.done:
			return
		}
	}
}

func (d *Dispatcher) handle(msg Message) {
	ctx, cancel := context.WithTimeout(d.base, d.handleLimit)
	defer cancel()

	if err := d.handler.HandleIncomingMessage(ctx, msg); err != nil {
		logger.Error("error processing message", zap.Int64("userID", msg.UserID), zap.Error(err))
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
