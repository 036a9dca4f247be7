package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/handler/dto"
	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

type PinService interface {
	List(ctx context.Context) ([]models.Pin, error)
	Create(ctx context.Context, pin *models.Pin) (*models.Pin, error)
	Import(ctx context.Context, batch []models.Pin, mode types.ImportMode) ([]models.Pin, error)
	Delete(ctx context.Context, pinID uuid.UUID) error
	Complete(ctx context.Context, pinID uuid.UUID) (*models.DeliveredPin, error)
	History(ctx context.Context, limit int) ([]models.DeliveredPin, error)
}

type Pin struct {
	service PinService
	log     logger.Logger
}

func NewPin(service PinService, log logger.Logger) *Pin {
	return &Pin{
		service: service,
		log:     log,
	}
}

// List godoc
// @Summary      List delivery pins
// @Tags         Pins
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /pins [get]
func (h *Pin) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_pins")

	pins, err := h.service.List(ctx)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to list pins", err)
		internalErrorResponse(w, "could not list pins")
		return
	}
	if pins == nil {
		pins = []models.Pin{}
	}

	if err := writeJSON(w, http.StatusOK, envelope{"pins": pins}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// Create godoc
// @Summary      Create one delivery pin
// @Tags         Pins
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePinRequest true "New pin"
// @Success      201  {object}  map[string]any
// @Failure      422  {object}  map[string]string
// @Router       /pins [post]
func (h *Pin) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_pin")

	var req dto.CreatePinRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	pin := req.ToModel()
	created, err := h.service.Create(ctx, &pin)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to create pin", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"pin": created}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// Import godoc
// @Summary      Import a pin batch
// @Description  Applies a pin batch atomically; replace mode clears the board first
// @Tags         Pins
// @Accept       json
// @Produce      json
// @Param        request body dto.ImportPinsRequest true "Pin batch"
// @Success      201  {object}  map[string]any
// @Failure      422  {object}  map[string]string
// @Router       /pins/import [post]
func (h *Pin) Import(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "import_pins")

	var req dto.ImportPinsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = types.ImportAppend
	}
	if mode != types.ImportAppend && mode != types.ImportReplace {
		badRequestResponse(w, "mode must be 'replace' or 'append'")
		return
	}

	imported, err := h.service.Import(ctx, req.ToModels(), mode)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to import pins", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"pins": imported, "count": len(imported)}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// Delete godoc
// @Summary      Delete a pin
// @Tags         Pins
// @Produce      json
// @Param        pin_id path string true "Pin ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /pins/{pin_id} [delete]
func (h *Pin) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_pin")

	pinID, err := uuid.Parse(r.PathValue("pin_id"))
	if err != nil {
		badRequestResponse(w, "invalid pin id")
		return
	}

	if err := h.service.Delete(ctx, pinID); err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete godoc
// @Summary      Complete a delivery
// @Description  Moves the pin to the delivery history
// @Tags         Pins
// @Produce      json
// @Param        pin_id path string true "Pin ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /pins/{pin_id}/complete [post]
func (h *Pin) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "complete_delivery")

	pinID, err := uuid.Parse(r.PathValue("pin_id"))
	if err != nil {
		badRequestResponse(w, "invalid pin id")
		return
	}
	ctx = wrap.WithPinID(ctx, pinID.String())

	delivered, err := h.service.Complete(ctx, pinID)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to complete delivery", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"delivered": delivered}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// History godoc
// @Summary      List completed deliveries
// @Tags         Pins
// @Produce      json
// @Param        limit query int false "Max entries"
// @Success      200  {object}  map[string]any
// @Router       /history [get]
func (h *Pin) History(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_history")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.service.History(ctx, limit)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to list history", err)
		internalErrorResponse(w, "could not list history")
		return
	}
	if history == nil {
		history = []models.DeliveredPin{}
	}

	if err := writeJSON(w, http.StatusOK, envelope{"history": history}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}
