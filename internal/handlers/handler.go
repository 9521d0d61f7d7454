// Package handlers is the presentation layer: it collects and sanitizes user
// input, invokes the registry, and renders results or the typed error's
// message verbatim.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"minibank/internal/ledger"
	"minibank/internal/models"
	"minibank/internal/registry"
	"minibank/internal/store"
	"minibank/internal/utils"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibank_operations_total",
		Help: "Ledger operations by kind and outcome",
	}, []string{"operation", "outcome"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minibank_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "path"})
)

var validate = validator.New()

// Input masks mirrored from the form layer: the core re-validates, this is
// the first line.
var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]{1,2})?$`)

type Handler struct {
	registry *registry.Registry
	metrics  fasthttp.RequestHandler
}

func New(reg *registry.Registry) *Handler {
	return &Handler{
		registry: reg,
		metrics:  fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}
}

// Handle routes every request. The endpoint surface is small enough that a
// method+path switch beats pulling in a router.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	method := string(ctx.Method())
	path := string(ctx.Path())
	utils.LogRequest(method, path)

	switch {
	case method == fasthttp.MethodGet && path == "/health":
		h.Health(ctx)
	case method == fasthttp.MethodGet && path == "/metrics":
		h.metrics(ctx)
	case method == fasthttp.MethodPost && path == "/accounts":
		h.OpenAccount(ctx)
	case method == fasthttp.MethodGet && path == "/accounts":
		h.ListAccounts(ctx)
	case method == fasthttp.MethodGet && path == "/accounts/balance":
		h.Balance(ctx)
	case method == fasthttp.MethodPost && path == "/operations/deposit":
		h.Deposit(ctx)
	case method == fasthttp.MethodPost && path == "/operations/withdraw":
		h.Withdraw(ctx)
	case method == fasthttp.MethodPost && path == "/operations/transfer":
		h.Transfer(ctx)
	case method == fasthttp.MethodPost && path == "/operations/interest":
		h.ApplyInterest(ctx)
	case method == fasthttp.MethodGet && path == "/history":
		h.History(ctx)
	default:
		h.respondError(ctx, fasthttp.StatusNotFound, "route not found")
	}

	httpLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	utils.LogResponse(path, ctx.Response.StatusCode(), time.Since(start))
}

func (h *Handler) Health(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, fasthttp.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(payload)
}

func (h *Handler) respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondJSON(ctx, status, models.ErrorResponse{Error: message})
}

// respondOperationError maps the error taxonomy to a status code and renders
// the message verbatim.
func (h *Handler) respondOperationError(ctx *fasthttp.RequestCtx, err error) {
	h.respondError(ctx, statusForError(err), err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrAccountNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, registry.ErrAccountExists),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return fasthttp.StatusConflict
	case errors.Is(err, store.ErrPersistence):
		return fasthttp.StatusInternalServerError
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrUnknownKind),
		errors.Is(err, registry.ErrInvalidAccountID),
		errors.Is(err, registry.ErrInvalidOwnerName),
		errors.Is(err, registry.ErrNegativeBalance),
		errors.Is(err, registry.ErrSelfTransfer):
		return fasthttp.StatusBadRequest
	}
	return fasthttp.StatusInternalServerError
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(raw) {
		return decimal.Zero, fmt.Errorf("amount %q must be a number with at most 2 decimal places", raw)
	}
	return decimal.NewFromString(raw)
}
