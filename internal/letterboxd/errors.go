package letterboxd

import (
	"fmt"
	"time"

	"jellyboxd/internal/services"
)

// WaitError reports a hard wait that did not observe its condition in time.
type WaitError struct {
	From    State
	To      State
	Step    string
	Target  Locator
	Timeout time.Duration
	Err     error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("letterboxd %s -> %s: %s: %s not satisfied within %s", e.From, e.To, e.Step, e.Target, e.Timeout)
}

func (e *WaitError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, services.ErrTimeout) match.
func (e *WaitError) Is(target error) bool {
	return target == services.ErrTimeout
}
