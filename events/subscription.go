package events

import (
	"context"
	"sync"
)

// ISubscription defines the contract for subscription objects
type ISubscription[T any] interface {
	// Chan returns a read-only channel for self-handling events
	Chan() <-chan T
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each event
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(T)) ISubscription[T]
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager[T any] interface {
	// Subscribe creates a new subscription and returns it
	Subscribe() ISubscription[T]
	// Unsubscribe removes a subscription by its channel
	Unsubscribe(ch chan T)
	// Emit sends event to all subscribers (non-blocking if their channel is full)
	Emit(ctx context.Context, event T)
}

// DefaultBufferSize is the per-subscriber channel capacity
const DefaultBufferSize = 64

type Subscription[T any] struct {
	ch     chan T
	mgr    *SubscriptionManager[T]
	cancel context.CancelFunc
	once   sync.Once
}

// Chan returns a read-only channel for self-handling events.
func (s *Subscription[T]) Chan() <-chan T { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.mgr.Unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each event.
// When parentCtx finishes, the subscription is automatically cancelled.
func (s *Subscription[T]) Watch(parentCtx context.Context, cb func(T)) ISubscription[T] {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	go func(ctx context.Context) {
		defer s.Cancel() // cancel subscription on exit
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-s.ch:
				if !ok {
					return
				}
				cb(event)
			}
		}
	}(ctx)

	return s
}

// SubscriptionManager fans events out to subscribers. A slow subscriber loses
// events instead of blocking the publisher.
type SubscriptionManager[T any] struct {
	mu          sync.RWMutex
	subscribers map[chan T]struct{}
	bufferSize  int
}

func NewSubscriptionManager[T any]() *SubscriptionManager[T] {
	return NewSubscriptionManagerWithBuffer[T](DefaultBufferSize)
}

func NewSubscriptionManagerWithBuffer[T any](bufferSize int) *SubscriptionManager[T] {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &SubscriptionManager[T]{
		subscribers: make(map[chan T]struct{}),
		bufferSize:  bufferSize,
	}
}

func (m *SubscriptionManager[T]) Subscribe() ISubscription[T] {
	ch := make(chan T, m.bufferSize)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription[T]{ch: ch, mgr: m}
}

func (m *SubscriptionManager[T]) Unsubscribe(ch chan T) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit sends event to all subscribers (non-blocking if their channel is full).
func (m *SubscriptionManager[T]) Emit(ctx context.Context, event T) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			// Stop sending notifications when the context is cancelled
			return
		case sub <- event:
			// Notified successfully
		default:
			// Skip notification if the subscriber's channel is full (non-blocking)
		}
	}
}

// Count returns the number of active subscribers
func (m *SubscriptionManager[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
