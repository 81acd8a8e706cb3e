// Package notify is the fire-and-forget notification surface. Presentation
// (toast, status line, stderr) is up to the receiver; senders never block on
// or inspect delivery.
package notify

import "sync"

type Severity int

const (
	Info Severity = iota
	Success
	Error
)

// Notification is one user-visible event: short title, underlying detail.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

type Notifier interface {
	Notify(Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops everything. Used in tests and headless flows.
var Discard Notifier = Func(func(Notification) {})

// Buffer collects notifications for a consumer that polls, such as a TUI
// event loop draining after each completed command.
type Buffer struct {
	mu      sync.Mutex
	pending []Notification
}

func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, n)
}

// Drain returns and clears everything collected so far.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}
