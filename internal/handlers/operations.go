package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"minibank/internal/models"
)

// Deposit handles POST /operations/deposit.
func (h *Handler) Deposit(ctx *fasthttp.RequestCtx) {
	req, amount, ok := h.parseAmountRequest(ctx, "deposit")
	if !ok {
		return
	}

	account, err := h.registry.Deposit(ctx, req.AccountID, amount)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("deposit", "rejected").Inc()
		return
	}

	operationsTotal.WithLabelValues("deposit", "ok").Inc()
	h.respondJSON(ctx, fasthttp.StatusOK, models.OperationResponse{
		Message:   fmt.Sprintf("Deposit successful. Current balance: %s", account.Balance().StringFixed(2)),
		AccountID: account.ID(),
		Balance:   account.Balance().StringFixed(2),
	})
}

// Withdraw handles POST /operations/withdraw.
func (h *Handler) Withdraw(ctx *fasthttp.RequestCtx) {
	req, amount, ok := h.parseAmountRequest(ctx, "withdraw")
	if !ok {
		return
	}

	account, err := h.registry.Withdraw(ctx, req.AccountID, amount)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("withdraw", "rejected").Inc()
		return
	}

	operationsTotal.WithLabelValues("withdraw", "ok").Inc()
	h.respondJSON(ctx, fasthttp.StatusOK, models.OperationResponse{
		Message:   fmt.Sprintf("Withdrawal successful. Remaining balance: %s", account.Balance().StringFixed(2)),
		AccountID: account.ID(),
		Balance:   account.Balance().StringFixed(2),
	})
}

// Transfer handles POST /operations/transfer.
func (h *Handler) Transfer(ctx *fasthttp.RequestCtx) {
	var req models.TransferRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		operationsTotal.WithLabelValues("transfer", "rejected").Inc()
		return
	}
	if err := validate.Struct(&req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues("transfer", "rejected").Inc()
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues("transfer", "rejected").Inc()
		return
	}

	from, to, err := h.registry.Transfer(ctx, req.FromAccountID, req.ToAccountID, amount)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("transfer", "rejected").Inc()
		return
	}

	operationsTotal.WithLabelValues("transfer", "ok").Inc()
	h.respondJSON(ctx, fasthttp.StatusOK, models.TransferResponse{
		Message:            fmt.Sprintf("Transfer successful. Source balance: %s", from.Balance().StringFixed(2)),
		FromAccountID:      from.ID(),
		ToAccountID:        to.ID(),
		SourceBalance:      from.Balance().StringFixed(2),
		DestinationBalance: to.Balance().StringFixed(2),
	})
}

// ApplyInterest handles POST /operations/interest.
func (h *Handler) ApplyInterest(ctx *fasthttp.RequestCtx) {
	var req models.InterestRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		operationsTotal.WithLabelValues("interest", "rejected").Inc()
		return
	}
	if err := validate.Struct(&req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues("interest", "rejected").Inc()
		return
	}

	account, earned, err := h.registry.ApplyInterest(ctx, req.AccountID)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("interest", "rejected").Inc()
		return
	}

	operationsTotal.WithLabelValues("interest", "ok").Inc()
	h.respondJSON(ctx, fasthttp.StatusOK, models.InterestResponse{
		Message:   fmt.Sprintf("Interest applied. New balance: %s", account.Balance().StringFixed(2)),
		AccountID: account.ID(),
		Earned:    earned.StringFixed(2),
		Balance:   account.Balance().StringFixed(2),
	})
}

func (h *Handler) parseAmountRequest(ctx *fasthttp.RequestCtx, operation string) (models.AmountRequest, decimal.Decimal, bool) {
	var req models.AmountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		operationsTotal.WithLabelValues(operation, "rejected").Inc()
		return req, decimal.Zero, false
	}
	if err := validate.Struct(&req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues(operation, "rejected").Inc()
		return req, decimal.Zero, false
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues(operation, "rejected").Inc()
		return req, decimal.Zero, false
	}

	return req, amount, true
}
