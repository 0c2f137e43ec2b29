package controllers

import (
	"net/http"

	"github.com/bnuindustry/warehouse-backend/api/responses"
	"github.com/bnuindustry/warehouse-backend/api/validators"
	"github.com/bnuindustry/warehouse-backend/internal/finance"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 500
)

// FinanceTransactions returns the most recent transactions, newest last,
// capped by the limit query parameter.
func FinanceTransactions(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "finance service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultTransactionLimit, 1, maxTransactionLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transactions := svc.List(r.Context())
		if len(transactions) > limit {
			transactions = transactions[len(transactions)-limit:]
		}

		responses.WriteSuccess(w, transactions)
	}
}

func FinanceSummary(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "finance service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}
