package tui

import "sync"

// screenTarget is the preview mount surface. The render lifecycle writes to
// it from a command goroutine while Update reads it, so access is locked.
type screenTarget struct {
	mu      sync.Mutex
	visible bool
	width   int
	height  int
	content string
	scale   int
}

func newScreenTarget() *screenTarget {
	return &screenTarget{}
}

func (t *screenTarget) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

func (t *screenTarget) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *screenTarget) SetContent(content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.content = content
}

func (t *screenTarget) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.content = ""
}

func (t *screenTarget) SetScale(percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scale = percent
}

func (t *screenTarget) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = visible
}

func (t *screenTarget) SetSize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = width
	t.height = height
}

func (t *screenTarget) Content() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.content
}

func (t *screenTarget) Scale() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scale
}
