// Package events implements the synchronous publish/subscribe bus that every
// storefront component communicates through. Dispatch is immediate and
// depth-first: a handler that emits another event sees that event fully
// processed before its own emit call returns.
//
// A Bus carries no locks. It belongs to exactly one session and must only be
// used while holding that session's lock; within the session the core is
// single-threaded by design.
package events

import (
	"fmt"
	"reflect"
	"strings"
)

// Handler processes the payload of an emitted event.
type Handler func(payload any)

type subscription struct {
	pattern string
	fnID    uintptr
	fn      Handler
}

// Bus dispatches events to handlers in registration order.
type Bus struct {
	subs []subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// On registers handler to be invoked for every emitted event whose name
// matches pattern. A pattern is an exact event name, "*" for all events, or
// "prefix:*" to match every event under a namespace. Registering the same
// handler twice makes it fire twice.
//
// A malformed pattern is a programming error and panics.
func (b *Bus) On(pattern string, h Handler) {
	mustValidPattern(pattern)
	if h == nil {
		panic("events: nil handler")
	}
	b.subs = append(b.subs, subscription{
		pattern: pattern,
		fnID:    handlerID(h),
		fn:      h,
	})
}

// Off removes every registration of h under pattern. It is a no-op when the
// handler was never registered, so it is safe to call twice.
func (b *Bus) Off(pattern string, h Handler) {
	if h == nil {
		return
	}
	id := handlerID(h)
	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.pattern == pattern && s.fnID == id {
			continue
		}
		kept = append(kept, s)
	}
	b.subs = kept
}

// Emit synchronously invokes, in registration order, every handler whose
// pattern matches name. Handlers may emit further events (dispatched
// depth-first) and may register or remove handlers; such changes take effect
// from the next emit. An event with no matching handlers is a no-op.
func (b *Bus) Emit(name string, payload any) {
	mustValidName(name)
	eventsEmitted.WithLabelValues(name).Inc()

	// Snapshot so handlers can mutate registrations without affecting the
	// dispatch already in flight.
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)

	for _, s := range subs {
		if Match(s.pattern, name) {
			handlersInvoked.Inc()
			s.fn(payload)
		}
	}
}

// Trigger returns a function that emits name with its argument merged with
// the fixed context map. Context entries win over argument entries. It adapts
// imperative callback sites into event emission without an explicit Emit.
func (b *Bus) Trigger(name string, context map[string]any) func(data map[string]any) {
	mustValidName(name)
	return func(data map[string]any) {
		merged := make(map[string]any, len(data)+len(context))
		for k, v := range data {
			merged[k] = v
		}
		for k, v := range context {
			merged[k] = v
		}
		b.Emit(name, merged)
	}
}

// Match reports whether pattern matches the event name. Patterns are exact
// names, "*", or "prefix:*".
func Match(pattern, name string) bool {
	if pattern == "*" || pattern == name {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, ":*"); ok {
		return strings.HasPrefix(name, prefix+":")
	}
	return false
}

// handlerID returns the identity of a handler func, used by Off. Two Handler
// values created from the same func literal or method value share an identity.
func handlerID(h Handler) uintptr {
	return reflect.ValueOf(h).Pointer()
}

func mustValidName(name string) {
	if name == "" || strings.Contains(name, "*") {
		panic(fmt.Sprintf("events: malformed event name %q", name))
	}
}

func mustValidPattern(pattern string) {
	if pattern == "*" {
		return
	}
	if pattern == "" {
		panic("events: empty pattern")
	}
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		if !strings.HasSuffix(pattern, ":*") || i != len(pattern)-1 {
			panic(fmt.Sprintf("events: malformed pattern %q", pattern))
		}
	}
}
