package handlers

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"minibank/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// History handles GET /history?account_id=<account id>. Entries come back in
// insertion order, oldest first, exactly as the ledger recorded them.
func (h *Handler) History(ctx *fasthttp.RequestCtx) {
	accountID := string(ctx.QueryArgs().Peek("account_id"))
	if accountID == "" {
		h.respondError(ctx, fasthttp.StatusBadRequest, "account_id query parameter is required")
		return
	}

	account, ok := h.registry.Find(accountID)
	if !ok {
		h.respondError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("account not found: %s", accountID))
		return
	}

	history := account.History()
	response := models.HistoryResponse{
		AccountID: account.ID(),
		Entries:   make([]models.HistoryEntry, 0, len(history)),
		Total:     len(history),
	}
	for _, record := range history {
		response.Entries = append(response.Entries, models.HistoryEntry{
			Timestamp: record.Timestamp.Format(timestampLayout),
			Kind:      record.Kind,
			Amount:    record.Amount,
		})
	}

	h.respondJSON(ctx, fasthttp.StatusOK, response)
}
