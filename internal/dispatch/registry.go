package dispatch

import (
	"sync"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/ports"
)

// HandlerRegistry maps event types to their ordered handler lists. It is
// populated at process start by the composition root; registration order is
// execution order. Safe for concurrent use.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[event.Type][]ports.EventHandler
	byID     map[string]ports.EventHandler
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[event.Type][]ports.EventHandler),
		byID:     make(map[string]ports.EventHandler),
	}
}

// Register appends the handler to the ordered list for the event type.
// Registering a handler with the same HandlerID for the same type again is
// a no-op.
func (r *HandlerRegistry) Register(eventType event.Type, handler ports.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.handlers[eventType] {
		if existing.HandlerID() == handler.HandlerID() {
			return
		}
	}

	r.handlers[eventType] = append(r.handlers[eventType], handler)
	r.byID[handler.HandlerID()] = handler
}

// HandlersFor returns the handlers registered for the event type in
// registration order. The returned slice is a copy.
func (r *HandlerRegistry) HandlersFor(eventType event.Type) []ports.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]ports.EventHandler(nil), r.handlers[eventType]...)
}

// HandlerByID looks up a handler by its stable identifier. Used by the retry
// sweep to resume deliveries across process restarts.
func (r *HandlerRegistry) HandlerByID(id string) (ports.EventHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.byID[id]
	return handler, ok
}
