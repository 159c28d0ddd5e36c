package state

import (
	"sync"
	"time"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

type Toast struct {
	ID      int64
	Message string
	Kind    ToastKind
}

// Toasts is a queue of transient notifications. Each toast is removed
// after the TTL unless it is removed earlier.
type Toasts struct {
	ttl time.Duration

	mu     sync.Mutex
	nextID int64
	items  []Toast
	timers map[int64]*time.Timer
}

// NewToasts returns a queue whose toasts expire after ttl; ttl <= 0 keeps
// them until removed.
func NewToasts(ttl time.Duration) *Toasts {
	return &Toasts{ttl: ttl, timers: make(map[int64]*time.Timer)}
}

func (t *Toasts) Show(message string, kind ToastKind) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.items = append(t.items, Toast{ID: id, Message: message, Kind: kind})

	if t.ttl > 0 {
		t.timers[id] = time.AfterFunc(t.ttl, func() { t.Remove(id) })
	}
	return id
}

func (t *Toasts) Success(message string) int64 {
	return t.Show(message, ToastSuccess)
}

func (t *Toasts) Error(message string) int64 {
	return t.Show(message, ToastError)
}

func (t *Toasts) Remove(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// List returns the visible toasts, oldest first.
func (t *Toasts) List() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

// Drain returns the visible toasts and removes them.
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.items
	t.items = nil
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	return out
}
