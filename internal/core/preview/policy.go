package preview

import "time"

// Visibility polling: the mount target's layout settles some time after the
// surrounding UI opens. Waiting is a best-effort optimization, not a hard
// precondition, so the policy proceeds after the attempt bound instead of
// failing; the renderer handles a zero-size target by painting nothing.
const (
	VisibilityPollInterval = 100 * time.Millisecond
	VisibilityPollAttempts = 10
)

// Decision is the outcome of one visibility poll.
type Decision int

const (
	// Continue waits one interval and polls again.
	Continue Decision = iota
	// Proceed moves on to rendering.
	Proceed
)

// DecideVisibilityWait is the bounded retry policy for the visibility wait,
// kept pure so it is testable without a renderer or a real surface.
func DecideVisibilityWait(visible bool, attempt, maxAttempts int) Decision {
	if visible {
		return Proceed
	}
	if attempt >= maxAttempts {
		return Proceed
	}
	return Continue
}
