package controllers

import (
	"net/http"

	"github.com/bnuindustry/warehouse-backend/api/responses"
	"github.com/bnuindustry/warehouse-backend/api/validators"
	"github.com/bnuindustry/warehouse-backend/internal/fulfillment"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
)

type customerOrderCreateRequest struct {
	CustomerName string                 `json:"customer_name" validate:"required"`
	Items        []orderLineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CustomerOrderCreate registers a new customer order in pending state.
func CustomerOrderCreate(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
			return
		}

		var payload customerOrderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]fulfillment.LineItemInput, 0, len(payload.Items))
		for _, row := range payload.Items {
			items = append(items, fulfillment.LineItemInput{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				UnitPrice:   row.UnitPrice,
				Quantity:    row.Quantity,
			})
		}

		order, err := svc.CreateOrder(r.Context(), fulfillment.CreateOrderInput{
			CustomerName: payload.CustomerName,
			Items:        items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func CustomerOrderList(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

func CustomerOrderDetail(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
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

// CustomerOrderFulfill runs the one-time fulfillment transition.
func CustomerOrderFulfill(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID)
		}

		order, err := svc.Fulfill(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
