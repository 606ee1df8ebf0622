package connmon

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the channel buffer size for [Monitor.Subscribe].
const subscriberBuffer = 16

// notifier fans a connectivity transition out to registered callbacks and
// channel subscribers. Callbacks are fixed at construction; subscriptions
// may come and go at runtime.
//
// The notifier has its own lock so that notification delivery never
// contends with the monitor's state mutex.
type notifier struct {
	callbacks []func(bool)
	logger    *slog.Logger

	mu          sync.RWMutex
	subscribers map[chan bool]struct{}
	closed      bool
}

func newNotifier(callbacks []func(bool), logger *slog.Logger) *notifier {
	return &notifier{
		callbacks:   callbacks,
		logger:      logger,
		subscribers: make(map[chan bool]struct{}),
	}
}

// notify delivers a transition to all callbacks, then to all subscribers.
func (n *notifier) notify(connected bool) {
	for _, cb := range n.callbacks {
		n.invokeSafe(cb, connected)
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subscribers {
		select {
		case ch <- connected:
		default:
			// subscriber is slow, drop the update
		}
	}
}

// invokeSafe calls a change callback with panic recovery.
// If the callback panics, the full stack trace is logged with a correlation
// ID so the failure can be traced without crashing the monitor.
func (n *notifier) invokeSafe(cb func(bool), connected bool) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			n.logger.Error("change callback panicked",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(connected)
}

func (n *notifier) subscribe() <-chan bool {
	ch := make(chan bool, subscriberBuffer)

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		close(ch)
		return ch
	}
	n.subscribers[ch] = struct{}{}
	return ch
}

func (n *notifier) unsubscribe(ch <-chan bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// find and delete the channel (need to convert to the right type)
	for subCh := range n.subscribers {
		if subCh == ch {
			delete(n.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// close closes all subscriber channels and rejects future subscriptions.
func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for ch := range n.subscribers {
		close(ch)
		delete(n.subscribers, ch)
	}
}

// Subscribe creates a new subscription and returns a channel that receives
// the new state on every connectivity transition.
//
// The returned channel has a small buffer. Delivery is non-blocking: if the
// buffer fills (slow consumer), transitions are dropped for this subscriber.
//
// Caller must call [Monitor.Unsubscribe] when done to prevent resource
// leaks. Subscribing to a closed monitor returns an already-closed channel.
func (m *Monitor) Subscribe() <-chan bool {
	return m.notifier.subscribe()
}

// Unsubscribe removes a subscription and closes its channel.
//
// After calling Unsubscribe, no further transitions are sent. Safe to call
// multiple times or with an unknown channel.
func (m *Monitor) Unsubscribe(ch <-chan bool) {
	m.notifier.unsubscribe(ch)
}
