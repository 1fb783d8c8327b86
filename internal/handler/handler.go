// Package handler содержит HTTP-обработчики API сервиса boostmarket.
package handler

//go:generate mockgen -source=handler.go -destination=../mocks/mock_service.go -package=mocks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/middleware"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/pricing"
	"github.com/mmeshcher/boostmarket/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service определяет контракт движка заказов, используемый HTTP-обработчиками.
type Service interface {
	QuotePrice(q pricing.Quote) (decimal.Decimal, error)
	CreateOrder(ctx context.Context, actor model.Actor, req service.CreateOrderRequest) (*model.Order, error)
	AttachClient(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	ConfirmPayment(ctx context.Context, orderID int64) (*model.Order, error)
	Release(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	Claim(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	Assign(ctx context.Context, actor model.Actor, orderID, boosterID int64) (*model.Order, error)
	SubmitProof(ctx context.Context, actor model.Actor, orderID int64, proofRef string) (*model.Order, error)
	Review(ctx context.Context, actor model.Actor, orderID int64, d service.ReviewDecision) (*model.Order, error)
	Cancel(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	ForceStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus, boosterID *int64) (*model.Order, error)
	GetOrder(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	ListOrders(ctx context.Context, actor model.Actor, f model.OrderFilter) ([]model.Order, error)
	AvailableOrders(ctx context.Context, actor model.Actor, limit int) ([]model.Order, error)
	ListMessages(ctx context.Context, actor model.Actor, orderID int64) ([]model.ChatMessage, error)

	CreateBooster(ctx context.Context, actor model.Actor, nb service.NewBooster) (*model.Booster, error)
	UpdateBooster(ctx context.Context, actor model.Actor, id int64, stats model.BoosterStats) (*model.Booster, error)
	SetBoosterActive(ctx context.Context, actor model.Actor, id int64, active bool) (*model.Booster, error)
	MyBooster(ctx context.Context, actor model.Actor) (*model.Booster, error)

	RequestWithdrawal(ctx context.Context, actor model.Actor, req service.WithdrawalRequest) (*model.Withdrawal, error)
	DecideWithdrawal(ctx context.Context, actor model.Actor, id int64, d service.WithdrawalDecision) (*model.Withdrawal, error)
	Wallet(ctx context.Context, actor model.Actor, boosterID int64) (*model.Settlement, error)
	MyWallet(ctx context.Context, actor model.Actor) (*model.Settlement, error)
	ListWithdrawals(ctx context.Context, actor model.Actor, f model.WithdrawalFilter) ([]model.Withdrawal, error)

	Ping(ctx context.Context) error
}

// ProofStore сохраняет загруженные пруфы выполнения.
type ProofStore interface {
	Save(r io.Reader) (string, error)
	Remove(ref string) error
	MaxBytes() int64
}

// ChatSubscriber держит websocket-подписку на сообщения заказа.
type ChatSubscriber interface {
	Subscribe(w http.ResponseWriter, r *http.Request, orderID int64) error
}

// Handler реализует HTTP-обработчики API сервиса boostmarket.
type Handler struct {
	service       Service
	logger        *zap.Logger
	tokens        *middleware.TokenManager
	chat          ChatSubscriber
	proofs        ProofStore
	webhookSecret string
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, tokens *middleware.TokenManager, chat ChatSubscriber, proofs ProofStore, webhookSecret string) *Handler {
	return &Handler{
		service:       s,
		logger:        logger,
		tokens:        tokens,
		chat:          chat,
		proofs:        proofs,
		webhookSecret: webhookSecret,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func statusFor(code string) int {
	switch code {
	case "not_found":
		return http.StatusNotFound
	case "invalid_transition", "conflict":
		return http.StatusConflict
	case "validation_failed":
		return http.StatusUnprocessableEntity
	case "forbidden":
		return http.StatusForbidden
	case "storage_unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.Code(err)
	status := statusFor(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		message = http.StatusText(status)
	}

	h.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

// Ping проверяет доступность хранилища.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
