package wrap

import (
	"context"
)

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		Action    string
		RequestID string
		DriverID  string
		SessionID string
		PinID     string
	}

	// logCtxKeyStruct is an unexported type for context keys defined in this package.
	logCtxKeyStruct struct{}
)

// LogCtxKey is the key for log context values
var LogCtxKey = &logCtxKeyStruct{}

// WithLogCtx returns a new context with the provided LogCtx.
// Fields left empty in newLc keep their previous values.
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	if lc, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		if newLc.Action == "" {
			newLc.Action = lc.Action
		}
		if newLc.RequestID == "" {
			newLc.RequestID = lc.RequestID
		}
		if newLc.DriverID == "" {
			newLc.DriverID = lc.DriverID
		}
		if newLc.SessionID == "" {
			newLc.SessionID = lc.SessionID
		}
		if newLc.PinID == "" {
			newLc.PinID = lc.PinID
		}
	}
	return context.WithValue(ctx, LogCtxKey, newLc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	lc, _ := ctx.Value(LogCtxKey).(LogCtx)
	lc.Action = action
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc, _ := ctx.Value(LogCtxKey).(LogCtx)
	lc.RequestID = requestID
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithDriverID adds or updates the DriverID in the LogCtx within the context
func WithDriverID(ctx context.Context, driverID string) context.Context {
	lc, _ := ctx.Value(LogCtxKey).(LogCtx)
	lc.DriverID = driverID
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithSessionID adds or updates the SessionID in the LogCtx within the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	lc, _ := ctx.Value(LogCtxKey).(LogCtx)
	lc.SessionID = sessionID
	return context.WithValue(ctx, LogCtxKey, lc)
}

// WithPinID adds or updates the PinID in the LogCtx within the context
func WithPinID(ctx context.Context, pinID string) context.Context {
	lc, _ := ctx.Value(LogCtxKey).(LogCtx)
	lc.PinID = pinID
	return context.WithValue(ctx, LogCtxKey, lc)
}
