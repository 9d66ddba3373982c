package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"futures-bot/internal/exchange"
	"futures-bot/internal/httputil"
	"futures-bot/internal/logging"
	"futures-bot/internal/orders"
)

type Handler struct {
	svc     *orders.Service
	logFile string
}

func NewHandler(svc *orders.Service, logFile string) *Handler {
	return &Handler{svc: svc, logFile: logFile}
}

type healthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type balancesResponse struct {
	Balances []exchange.AssetBalance `json:"balances"`
}

type orderResponse struct {
	Success bool                 `json:"success"`
	Order   exchange.OrderResult `json:"order"`
}

type logsResponse struct {
	Logs []string `json:"logs"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Message: "Futures Trading Bot API",
		Status:  "running",
	})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.Balances(r.Context())
	if err != nil {
		httputil.WriteJSON(w, statusFor(err), httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if balances == nil {
		balances = []exchange.AssetBalance{}
	}
	httputil.WriteJSON(w, http.StatusOK, balancesResponse{Balances: balances})
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.PlaceOrderRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	res, err := h.svc.PlaceOrder(r.Context(), req)
	if err != nil {
		httputil.WriteJSON(w, statusFor(err), httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, orderResponse{Success: true, Order: res})
}

func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	lines := 100
	if raw := r.URL.Query().Get("lines"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.ErrorResponse{Error: "invalid lines parameter"})
			return
		}
		lines = n
	}
	logs, err := logging.Tail(h.logFile, lines)
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logsResponse{Logs: logs})
}

// statusFor maps the error taxonomy onto HTTP codes: validation failures
// and missing credentials are the caller's to fix (422), everything else
// is an upstream or internal failure (500).
func statusFor(err error) int {
	if errors.Is(err, orders.ErrInvalidInput) || errors.Is(err, exchange.ErrConfiguration) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
