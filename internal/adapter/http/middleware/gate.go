package middleware

import (
	"fmt"
	"net/http"
	"strings"

	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

// Gate protects destructive storefront endpoints. The wrapped handler only
// runs when the request carries a valid unlock token obtained from
// POST /auth/unlock.
func (h *Middleware) Gate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			errorResponse(w, http.StatusUnauthorized, "unlock required")
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		if err := h.gate.Verify(ctx, token); err != nil {
			h.log.Warn(wrap.ErrorCtx(ctx, err), "gated request with invalid token")
			errorResponse(w, http.StatusUnauthorized, "invalid or expired unlock token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
