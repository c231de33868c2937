// Package debounce holds a value back until it has stopped changing for a
// fixed interval. It is a Bubble Tea component: Observe returns the timer
// command and Update consumes the timer message.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DefaultInterval is used when a zero interval is configured.
const DefaultInterval = 300 * time.Millisecond

// SettledMsg is delivered when a debounce timer elapses. Only the message
// matching the holder's latest tag is honoured.
type SettledMsg[T comparable] struct {
	id    string
	tag   int
	value T
}

// Holder debounces values of type T.
type Holder[T comparable] struct {
	id       string
	interval time.Duration

	tag      int
	value    T
	pending  T
	waiting  bool
	observed T
	stopped  bool
}

// New creates a holder whose debounced value starts at initial.
func New[T comparable](interval time.Duration, initial T) *Holder[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Holder[T]{
		id:       uuid.NewString(),
		interval: interval,
		value:    initial,
		observed: initial,
	}
}

// ID identifies the holder in timer messages.
func (h *Holder[T]) ID() string { return h.id }

// Interval returns the configured debounce interval.
func (h *Holder[T]) Interval() time.Duration { return h.interval }

// Value is the current debounced value.
func (h *Holder[T]) Value() T { return h.value }

// Pending reports whether a timer is running.
func (h *Holder[T]) Pending() bool { return h.waiting }

// Observe feeds a raw input value. A value different from the last observed
// one restarts the timer; repeating the same value is a no-op.
func (h *Holder[T]) Observe(v T) tea.Cmd {
	if h.stopped || v == h.observed {
		return nil
	}
	h.observed = v
	h.tag++
	h.pending = v
	h.waiting = true

	id, tag := h.id, h.tag
	return tea.Tick(h.interval, func(time.Time) tea.Msg {
		return SettledMsg[T]{id: id, tag: tag, value: v}
	})
}

// Flush settles the pending value immediately, as if its timer elapsed.
func (h *Holder[T]) Flush() (T, bool) {
	if h.stopped || !h.waiting {
		return h.value, false
	}
	return h.settle(h.pending)
}

// Update consumes a SettledMsg. It returns the new debounced value and true
// when the message is current and the value actually changed.
func (h *Holder[T]) Update(msg tea.Msg) (T, bool) {
	m, ok := msg.(SettledMsg[T])
	if !ok || h.stopped || m.id != h.id || m.tag != h.tag || !h.waiting {
		return h.value, false
	}
	return h.settle(m.value)
}

// Stop tears the holder down; a running timer will be ignored when it fires.
func (h *Holder[T]) Stop() {
	h.stopped = true
	h.waiting = false
	h.tag++
}

func (h *Holder[T]) settle(v T) (T, bool) {
	h.waiting = false
	if v == h.value {
		return h.value, false
	}
	h.value = v
	return h.value, true
}
