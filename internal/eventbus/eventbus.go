package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"avaliaccess/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchIssued         = domain.EventSearchIssued
	EventSuggestionsUpdated   = domain.EventSuggestionsUpdated
	EventSearchFailed         = domain.EventSearchFailed
	EventNavigated            = domain.EventNavigated
	EventLoggedIn             = domain.EventLoggedIn
	EventLoggedOut            = domain.EventLoggedOut
	EventEstablishmentCreated = domain.EventEstablishmentCreated
	EventReviewSubmitted      = domain.EventReviewSubmitted
	EventError                = domain.EventError
)

// Re-export domain event types
type SearchIssuedEvent = domain.SearchIssuedEvent
type SuggestionsUpdatedEvent = domain.SuggestionsUpdatedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type NavigatedEvent = domain.NavigatedEvent
type LoggedInEvent = domain.LoggedInEvent
type LoggedOutEvent = domain.LoggedOutEvent
type EstablishmentCreatedEvent = domain.EstablishmentCreatedEvent
type ReviewSubmittedEvent = domain.ReviewSubmittedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    logrus.FieldLogger
}

// New creates a new event bus
func New(logger logrus.FieldLogger) EventBus {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logger,
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventSearchIssued, EventSuggestionsUpdated:
		// too frequent to log
	default:
		b.logger.WithField("event", event.Type()).Debug("EventBus: publishing event")
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.WithField("event", event.Type()).Warn("Event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher; pending events are discarded
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// copy so handlers run without the lock held
			subsCopy := make([]subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, s := range subsCopy {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							b.logger.Errorf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// NopBus discards every event. Useful in tests and for components used without a bus.
type NopBus struct{}

func (NopBus) Publish(DomainEvent)                      {}
func (NopBus) Subscribe(EventType, EventHandler) func() { return func() {} }
func (NopBus) Close()                                   {}
