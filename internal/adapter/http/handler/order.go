package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/handler/dto"
	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

type OrderService interface {
	Submit(ctx context.Context, order *models.Order) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit int) ([]models.Order, error)
	MarkPrinted(ctx context.Context, orderID uuid.UUID) error
}

type Order struct {
	service OrderService
	log     logger.Logger
}

func NewOrder(service OrderService, log logger.Logger) *Order {
	return &Order{
		service: service,
		log:     log,
	}
}

// Submit godoc
// @Summary      Submit an order
// @Description  Persists the order and fans it out to the printer/notification consumers
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body dto.SubmitOrderRequest true "Order"
// @Success      201  {object}  map[string]any
// @Failure      422  {object}  map[string]string
// @Router       /orders [post]
func (h *Order) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "submit_order")

	var req dto.SubmitOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	order := req.ToModel()
	created, err := h.service.Submit(ctx, &order)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to submit order", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusCreated, envelope{"order": created}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// Get godoc
// @Summary      Get one order
// @Tags         Orders
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /orders/{order_id} [get]
func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_order")

	orderID, err := uuid.Parse(r.PathValue("order_id"))
	if err != nil {
		badRequestResponse(w, "invalid order id")
		return
	}

	order, err := h.service.Get(ctx, orderID)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"order": order}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// List godoc
// @Summary      List recent orders
// @Tags         Orders
// @Produce      json
// @Param        limit query int false "Max entries"
// @Success      200  {object}  map[string]any
// @Router       /orders [get]
func (h *Order) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_orders")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, err := h.service.List(ctx, limit)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to list orders", err)
		internalErrorResponse(w, "could not list orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	if err := writeJSON(w, http.StatusOK, envelope{"orders": orders}, nil); err != nil {
		internalErrorResponse(w, "failed to write response")
	}
}

// MarkPrinted godoc
// @Summary      Mark an order as printed
// @Description  Called by the print station after the receipt comes out
// @Tags         Orders
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Router       /orders/{order_id}/printed [post]
func (h *Order) MarkPrinted(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "mark_order_printed")

	orderID, err := uuid.Parse(r.PathValue("order_id"))
	if err != nil {
		badRequestResponse(w, "invalid order id")
		return
	}

	if err := h.service.MarkPrinted(ctx, orderID); err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
