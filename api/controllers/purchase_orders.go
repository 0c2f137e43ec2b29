package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/api/responses"
	"github.com/bnuindustry/warehouse-backend/api/validators"
	"github.com/bnuindustry/warehouse-backend/internal/purchasing"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
)

type orderLineItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
}

type purchaseOrderCreateRequest struct {
	SupplierID string                 `json:"supplier_id" validate:"required"`
	Items      []orderLineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type purchaseOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PurchaseOrderCreate registers a new supplier order in pending state.
func PurchaseOrderCreate(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchasing service unavailable"))
			return
		}

		var payload purchaseOrderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]purchasing.LineItemInput, 0, len(payload.Items))
		for _, row := range payload.Items {
			items = append(items, purchasing.LineItemInput{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				UnitPrice:   row.UnitPrice,
				Quantity:    row.Quantity,
			})
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSupplierID(ctx, payload.SupplierID)
		}

		order, err := svc.CreateOrder(ctx, purchasing.CreateOrderInput{
			SupplierID: payload.SupplierID,
			Items:      items,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func PurchaseOrderList(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchasing service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

func PurchaseOrderDetail(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchasing service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// PurchaseOrderStatus advances the order's state machine. Delivery triggers
// the supplier payment and the inventory credit downstream.
func PurchaseOrderStatus(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchasing service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload purchaseOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParsePurchaseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
				WithDetails(map[string]any{"status": payload.Status}))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID)
		}

		order, err := svc.UpdateStatus(ctx, orderID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func parseOrderID(r *http.Request) (string, error) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if orderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return orderID, nil
}
