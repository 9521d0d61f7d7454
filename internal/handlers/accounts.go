package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"minibank/internal/ledger"
	"minibank/internal/models"
)

// OpenAccount handles POST /accounts.
func (h *Handler) OpenAccount(ctx *fasthttp.RequestCtx) {
	var req models.OpenAccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		operationsTotal.WithLabelValues("open", "rejected").Inc()
		return
	}
	if err := validate.Struct(&req); err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues("open", "rejected").Inc()
		return
	}

	initial, err := parseAmount(req.InitialBalance)
	if err != nil {
		h.respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		operationsTotal.WithLabelValues("open", "rejected").Inc()
		return
	}

	kind, err := ledger.ParseKind(req.Kind)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("open", "rejected").Inc()
		return
	}

	account, err := h.registry.Open(ctx, req.ID, req.OwnerName, initial, kind)
	if err != nil {
		h.respondOperationError(ctx, err)
		operationsTotal.WithLabelValues("open", "rejected").Inc()
		return
	}

	operationsTotal.WithLabelValues("open", "ok").Inc()
	h.respondJSON(ctx, fasthttp.StatusCreated, models.OperationResponse{
		Message:   fmt.Sprintf("Account opened successfully. Current balance: %s", account.Balance().StringFixed(2)),
		AccountID: account.ID(),
		Balance:   account.Balance().StringFixed(2),
	})
}

// ListAccounts handles GET /accounts.
func (h *Handler) ListAccounts(ctx *fasthttp.RequestCtx) {
	accounts := h.registry.Accounts()

	response := models.AccountListResponse{
		Accounts: make([]models.AccountResponse, 0, len(accounts)),
		Total:    len(accounts),
	}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, accountResponse(account))
	}

	h.respondJSON(ctx, fasthttp.StatusOK, response)
}

// Balance handles GET /accounts/balance?id=<account id>.
func (h *Handler) Balance(ctx *fasthttp.RequestCtx) {
	id := string(ctx.QueryArgs().Peek("id"))
	if id == "" {
		h.respondError(ctx, fasthttp.StatusBadRequest, "id query parameter is required")
		return
	}

	account, ok := h.registry.Find(id)
	if !ok {
		h.respondError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("account not found: %s", id))
		return
	}

	h.respondJSON(ctx, fasthttp.StatusOK, accountResponse(account))
}

func accountResponse(account *ledger.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:        account.ID(),
		OwnerName: account.Owner(),
		Balance:   account.Balance().StringFixed(2),
		Kind:      string(account.Kind()),
	}
}
