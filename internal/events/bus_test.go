package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Dispatch Tests
// ============================================================================

func TestEmit_InvokesHandlerWithPayload(t *testing.T) {
	b := New()

	var got any
	b.On("basket:change", func(payload any) { got = payload })

	b.Emit("basket:change", 42)

	assert.Equal(t, 42, got)
}

func TestEmit_NoHandlersIsNoOp(t *testing.T) {
	b := New()

	assert.NotPanics(t, func() {
		b.Emit("items:change", nil)
	})
}

func TestEmit_RegistrationOrder(t *testing.T) {
	b := New()

	var order []string
	b.On("order:submit", func(any) { order = append(order, "first") })
	b.On("order:submit", func(any) { order = append(order, "second") })
	b.On("order:submit", func(any) { order = append(order, "third") })

	b.Emit("order:submit", nil)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEmit_DuplicateRegistrationFiresTwice(t *testing.T) {
	b := New()

	count := 0
	h := func(any) { count++ }
	b.On("basket:change", h)
	b.On("basket:change", h)

	b.Emit("basket:change", nil)

	assert.Equal(t, 2, count)
}

func TestEmit_ReentrantDepthFirst(t *testing.T) {
	b := New()

	var order []string
	b.On("card:select", func(any) {
		order = append(order, "select:begin")
		b.Emit("preview:change", nil)
		order = append(order, "select:end")
	})
	b.On("preview:change", func(any) {
		order = append(order, "preview")
	})

	b.Emit("card:select", nil)

	// The nested emit completes before control returns to the outer handler.
	assert.Equal(t, []string{"select:begin", "preview", "select:end"}, order)
}

func TestEmit_HandlerRegisteredDuringEmitDoesNotFireForSameEmit(t *testing.T) {
	b := New()

	lateFired := false
	b.On("modal:close", func(any) {
		b.On("modal:close", func(any) { lateFired = true })
	})

	b.Emit("modal:close", nil)
	assert.False(t, lateFired)

	b.Emit("modal:close", nil)
	assert.True(t, lateFired)
}

// ============================================================================
// Pattern Matching Tests
// ============================================================================

func TestMatch_Exact(t *testing.T) {
	assert.True(t, Match("basket:change", "basket:change"))
	assert.False(t, Match("basket:change", "basket:order"))
}

func TestMatch_Star(t *testing.T) {
	assert.True(t, Match("*", "anything"))
	assert.True(t, Match("*", "order:success"))
}

func TestMatch_PrefixWildcard(t *testing.T) {
	assert.True(t, Match("order:*", "order:submit"))
	assert.True(t, Match("order:*", "order:success"))
	assert.False(t, Match("order:*", "orderFormErrors:change"))
	assert.False(t, Match("order:*", "basket:order"))
}

func TestOn_WildcardReceivesAll(t *testing.T) {
	b := New()

	var seen []string
	b.On("*", func(payload any) { seen = append(seen, payload.(string)) })

	b.Emit("items:change", "a")
	b.Emit("basket:change", "b")

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestOn_MalformedPatternPanics(t *testing.T) {
	b := New()

	assert.Panics(t, func() { b.On("", func(any) {}) })
	assert.Panics(t, func() { b.On("ord*er", func(any) {}) })
	assert.Panics(t, func() { b.On("order*", func(any) {}) })
}

func TestEmit_MalformedNamePanics(t *testing.T) {
	b := New()

	assert.Panics(t, func() { b.Emit("", nil) })
	assert.Panics(t, func() { b.Emit("order:*", nil) })
}

// ============================================================================
// Off Tests
// ============================================================================

func TestOff_RemovedHandlerNeverFiresAgain(t *testing.T) {
	b := New()

	removedCount := 0
	keptCount := 0
	removed := func(any) { removedCount++ }
	kept := func(any) { keptCount++ }

	b.On("basket:change", removed)
	b.On("basket:change", kept)

	b.Emit("basket:change", nil)
	require.Equal(t, 1, removedCount)
	require.Equal(t, 1, keptCount)

	b.Off("basket:change", removed)

	b.Emit("basket:change", nil)
	assert.Equal(t, 1, removedCount, "removed handler must not fire")
	assert.Equal(t, 2, keptCount, "remaining handler still fires")
}

func TestOff_Idempotent(t *testing.T) {
	b := New()

	h := func(any) {}
	b.Off("basket:change", h)

	b.On("basket:change", h)
	b.Off("basket:change", h)
	b.Off("basket:change", h)

	count := 0
	b.On("basket:change", func(any) { count++ })
	b.Emit("basket:change", nil)
	assert.Equal(t, 1, count)
}

func TestOff_RemovesOnlyMatchingPattern(t *testing.T) {
	b := New()

	count := 0
	h := func(any) { count++ }
	b.On("basket:change", h)
	b.On("items:change", h)

	b.Off("basket:change", h)

	b.Emit("basket:change", nil)
	b.Emit("items:change", nil)
	assert.Equal(t, 1, count)
}

// ============================================================================
// Trigger Tests
// ============================================================================

func TestTrigger_EmitsWithMergedContext(t *testing.T) {
	b := New()

	var got map[string]any
	b.On("card:select", func(payload any) { got = payload.(map[string]any) })

	emit := b.Trigger("card:select", map[string]any{"source": "catalog"})
	emit(map[string]any{"id": "p-1"})

	require.NotNil(t, got)
	assert.Equal(t, "p-1", got["id"])
	assert.Equal(t, "catalog", got["source"])
}

func TestTrigger_ContextOverridesArgument(t *testing.T) {
	b := New()

	var got map[string]any
	b.On("card:select", func(payload any) { got = payload.(map[string]any) })

	emit := b.Trigger("card:select", map[string]any{"source": "preview"})
	emit(map[string]any{"source": "catalog", "id": "p-2"})

	assert.Equal(t, "preview", got["source"])
	assert.Equal(t, "p-2", got["id"])
}

func TestTrigger_NilMaps(t *testing.T) {
	b := New()

	fired := false
	b.On("modal:close", func(payload any) {
		fired = true
		assert.Empty(t, payload.(map[string]any))
	})

	emit := b.Trigger("modal:close", nil)
	emit(nil)

	assert.True(t, fired)
}
