package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

const tokenType = "gate"

// GateService implements the driver unlock gate. Destructive actions
// (deleting pins, completing deliveries, importing batches) require a short
// numeric PIN; a correct PIN yields a signed token the client attaches to
// subsequent gated requests.
type GateService struct {
	pin    string
	secret string
	ttl    time.Duration
	log    logger.Logger
}

func NewGateService(pin, secret string, ttl time.Duration, log logger.Logger) *GateService {
	return &GateService{
		pin:    pin,
		secret: secret,
		ttl:    ttl,
		log:    log,
	}
}

// Unlock exchanges a correct PIN for a gate token.
func (s *GateService) Unlock(ctx context.Context, pin string) (string, time.Time, error) {
	ctx = wrap.WithAction(ctx, "gate_unlock")

	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		s.log.Warn(ctx, "unlock attempt with wrong pin")
		return "", time.Time{}, wrap.Error(ctx, types.ErrInvalidPin)
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"typ": tokenType,
		"jti": uuid.NewString(),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, wrap.Error(ctx, err)
	}

	s.log.Info(ctx, "gate unlocked", "expires_at", expiresAt)

	return token, expiresAt, nil
}

// Verify validates a gate token.
func (s *GateService) Verify(ctx context.Context, token string) error {
	ctx = wrap.WithAction(ctx, "gate_verify")

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, types.ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !parsed.Valid {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}

	if typ, _ := mc["typ"].(string); typ != tokenType {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}

	return nil
}
