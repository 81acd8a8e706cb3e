// Package preview manages fetching a document's raw bytes, waiting for its
// mount surface to become visible, invoking the renderer, and applying zoom.
package preview

import "fmt"

// MountTarget is the surface rendered output is painted into. The
// surrounding UI owns its layout; visibility and size settle only after
// that UI has finished transitioning, which is outside this package's
// control.
type MountTarget interface {
	Visible() bool
	Size() (width, height int)
	SetContent(content string)
	Clear()
	SetScale(percent int)
}

// RenderOptions is the fixed configuration handed to the renderer.
type RenderOptions struct {
	WrapperClass    string
	WrapInContainer bool
	RespectWidth    bool
	RespectHeight   bool
	KeepFonts       bool
	PageBreaks      bool
	Base64Encode    bool
}

// Renderer turns raw document bytes into painted output on the target. It
// is treated as opaque: no return value on success, an error on malformed
// input. A zero-size target produces no visible output rather than erroring.
type Renderer interface {
	Render(raw []byte, target MountTarget, style MountTarget, opts RenderOptions) error
}

func defaultRenderOptions() RenderOptions {
	return RenderOptions{
		WrapperClass:    "docfill-page",
		WrapInContainer: true,
		RespectWidth:    true,
		RespectHeight:   true,
		KeepFonts:       true,
		PageBreaks:      true,
		Base64Encode:    false,
	}
}

// AcquisitionError reports that no byte source produced a usable buffer.
type AcquisitionError struct {
	Reason string
}

func (e *AcquisitionError) Error() string {
	return "document acquisition failed: " + e.Reason
}

// RenderError reports that the renderer raised during paint.
type RenderError struct {
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
