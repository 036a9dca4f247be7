package middleware

import (
	"context"

	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

type (
	// GateVerifier validates the unlock token carried on gated requests.
	GateVerifier interface {
		Verify(ctx context.Context, token string) error
	}

	Middleware struct {
		gate GateVerifier
		log  logger.Logger
	}
)

func NewMiddleware(gate GateVerifier, log logger.Logger) *Middleware {
	return &Middleware{
		gate: gate,
		log:  log,
	}
}
