package shutdown

import (
	"context"
)

// ServerFunc is an adapter to allow ordinary functions to be used as Servers.
type ServerFunc func(context.Context) error

func (f ServerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// NewServerFunc creates a Server from a function.
func NewServerFunc(fn func(context.Context) error) Server {
	return ServerFunc(fn)
}

// CloseFunc creates a cleanup function from a close method.
func CloseFunc(closeFn func()) CleanupFunc {
	return func() error {
		closeFn()
		return nil
	}
}

// CloseErrFunc creates a cleanup function from a close method that returns an error.
func CloseErrFunc(closeFn func() error) CleanupFunc {
	return closeFn
}

// LogFunc wraps a cleanup with a message logged before it runs.
func LogFunc(log interface{ Info(args ...interface{}) }, msg string, cleanup CleanupFunc) CleanupFunc {
	return func() error {
		log.Info(msg)
		return cleanup()
	}
}
