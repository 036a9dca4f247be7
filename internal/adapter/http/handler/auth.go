package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/handler/dto"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

type GateService interface {
	Unlock(ctx context.Context, pin string) (string, time.Time, error)
}

type Auth struct {
	gate GateService
	log  logger.Logger
}

func NewAuth(gate GateService, log logger.Logger) *Auth {
	return &Auth{
		gate: gate,
		log:  log,
	}
}

// Unlock godoc
// @Summary      Unlock gated actions
// @Description  Exchanges the driver PIN for a short-lived unlock token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.UnlockRequest true "Unlock PIN"
// @Success      200  {object}  dto.UnlockResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/unlock [post]
func (a *Auth) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "gate_unlock")

	var req dto.UnlockRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	token, expiresAt, err := a.gate.Unlock(ctx, req.Pin)
	if err != nil {
		a.log.Warn(wrap.ErrorCtx(ctx, err), "unlock rejected")
		errorResponse(w, GetCode(err), "invalid pin")
		return
	}

	resp := dto.UnlockResponse{Token: token, ExpiresAt: expiresAt}
	if err := writeJSON(w, http.StatusOK, envelope{"unlock": resp}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}
