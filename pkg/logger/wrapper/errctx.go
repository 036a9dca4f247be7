package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx carries the LogCtx captured at the failure site up the
// call stack, so the handler can log with the fields the lower layer had.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// ErrorCtx restores the LogCtx attached to err, if any, onto ctx. Errors
// without an attached LogCtx leave ctx unchanged.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		return context.WithValue(ctx, LogCtxKey, e.logCtx)
	}
	return ctx
}
