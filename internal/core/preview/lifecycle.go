package preview

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State of the preview lifecycle.
type State int

const (
	Idle State = iota
	Acquiring
	WaitingForVisibility
	Rendering
	Rendered
	Errored
)

// Zoom bounds: percent scale applied as a visual transform to the rendered
// target, independent of the render state machine.
const (
	ZoomMin     = 50
	ZoomMax     = 200
	ZoomStep    = 25
	ZoomDefault = 100
)

// ByteSource fetches a document's raw bytes. *api.Client satisfies it.
type ByteSource interface {
	FetchDocumentBytes(ctx context.Context, documentID string) ([]byte, error)
}

// Lifecycle drives one preview surface through
// Idle -> Acquiring -> WaitingForVisibility -> Rendering -> Rendered|Errored.
// It does not auto-retry; closing and reopening restarts from Idle.
//
// Open runs on its caller's goroutine while the UI reads state and adjusts
// zoom, so the mutable fields sit behind a lock. Open itself never holds it
// across a network call or a visibility poll.
type Lifecycle struct {
	source   ByteSource
	renderer Renderer
	target   MountTarget
	log      *zap.Logger

	mu     sync.Mutex
	state  State
	errMsg string
	zoom   int

	pollInterval time.Duration
	maxAttempts  int
	sleep        func(time.Duration)
}

func NewLifecycle(source ByteSource, renderer Renderer, target MountTarget, log *zap.Logger) *Lifecycle {
	return &Lifecycle{
		source:       source,
		renderer:     renderer,
		target:       target,
		log:          log,
		state:        Idle,
		zoom:         ZoomDefault,
		pollInterval: VisibilityPollInterval,
		maxAttempts:  VisibilityPollAttempts,
		sleep:        time.Sleep,
	}
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err is the human-readable message for the Errored state.
func (l *Lifecycle) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

func (l *Lifecycle) setState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s
}

// Open acquires the document bytes and renders them: from buffered if
// non-empty, otherwise fetched from the source. Exactly one render attempt
// happens per acquisition.
func (l *Lifecycle) Open(ctx context.Context, documentID string, buffered []byte) error {
	l.mu.Lock()
	l.state = Acquiring
	l.errMsg = ""
	l.zoom = ZoomDefault
	l.mu.Unlock()

	raw := buffered
	if len(raw) == 0 {
		if l.source == nil {
			return l.fail(&AcquisitionError{Reason: "no byte source available"})
		}
		fetched, err := l.source.FetchDocumentBytes(ctx, documentID)
		if err != nil {
			return l.fail(err)
		}
		raw = fetched
	}
	if len(raw) == 0 {
		return l.fail(&AcquisitionError{Reason: "document is empty"})
	}

	l.setState(WaitingForVisibility)
	for attempt := 1; ; attempt++ {
		if DecideVisibilityWait(l.target.Visible(), attempt, l.maxAttempts) == Proceed {
			if !l.target.Visible() {
				l.log.Warn("mount target never became visible, rendering anyway",
					zap.Int("attempts", attempt))
			}
			break
		}
		l.sleep(l.pollInterval)
	}

	// Always clear before rendering so a reopened preview never stacks
	// duplicate output.
	l.setState(Rendering)
	l.target.Clear()
	if err := l.renderer.Render(raw, l.target, nil, defaultRenderOptions()); err != nil {
		return l.fail(&RenderError{Cause: err})
	}

	l.mu.Lock()
	l.state = Rendered
	zoom := l.zoom
	l.mu.Unlock()
	l.target.SetScale(zoom)
	l.log.Info("preview rendered",
		zap.String("document_id", documentID),
		zap.Int("bytes", len(raw)))
	return nil
}

// fail transitions to Errored with the mount target cleared: on error the
// surface shows only the message, never a partially rendered document.
func (l *Lifecycle) fail(err error) error {
	l.mu.Lock()
	l.state = Errored
	l.errMsg = err.Error()
	l.mu.Unlock()
	l.target.Clear()
	l.log.Warn("preview failed", zap.Error(err))
	return err
}

// Close clears the surface and returns to Idle.
func (l *Lifecycle) Close() {
	l.mu.Lock()
	l.state = Idle
	l.errMsg = ""
	l.mu.Unlock()
	l.target.Clear()
}

// Zoom returns the current scale percent.
func (l *Lifecycle) Zoom() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zoom
}

// ZoomIn, ZoomOut and ZoomReset change only the visual transform. They never
// re-trigger acquisition or rendering.
func (l *Lifecycle) ZoomIn() int { return l.setZoom(func(z int) int { return z + ZoomStep }) }

func (l *Lifecycle) ZoomOut() int { return l.setZoom(func(z int) int { return z - ZoomStep }) }

func (l *Lifecycle) ZoomReset() int { return l.setZoom(func(int) int { return ZoomDefault }) }

func (l *Lifecycle) setZoom(next func(int) int) int {
	l.mu.Lock()
	percent := next(l.zoom)
	if percent < ZoomMin {
		percent = ZoomMin
	}
	if percent > ZoomMax {
		percent = ZoomMax
	}
	l.zoom = percent
	rendered := l.state == Rendered
	l.mu.Unlock()

	if rendered {
		l.target.SetScale(percent)
	}
	return percent
}
