package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mmeshcher/boostmarket/internal/middleware"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/pricing"
	"github.com/mmeshcher/boostmarket/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type quoteResponse struct {
	Price decimal.Decimal `json:"price"`
}

// Quote рассчитывает цену услуги без создания заказа.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var q pricing.Quote
	if err := decodeJSON(r, &q); err != nil {
		h.badRequest(w, "invalid quote body")
		return
	}

	price, err := h.service.QuotePrice(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, quoteResponse{Price: price})
}

// Checkout оформляет заказ от имени гостя или клиента.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "invalid checkout body")
		return
	}

	o, err := h.service.CreateOrder(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, o)
}

type webhookRequest struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// PaymentWebhook принимает уведомление платёжного шлюза, подписанное общим секретом.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Webhook-Secret")
	if h.webhookSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req webhookRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID <= 0 {
		h.badRequest(w, "invalid webhook body")
		return
	}

	if req.Status != "succeeded" {
		h.logger.Info("payment webhook ignored", zap.Int64("orderID", req.OrderID), zap.String("status", req.Status))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	o, err := h.service.ConfirmPayment(r.Context(), req.OrderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

// ListOrders возвращает заказы вызывающего с фильтром ?status=a,b и ?limit=n.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r)
	if !ok {
		h.badRequest(w, "invalid limit")
		return
	}

	f := model.OrderFilter{Limit: limit}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			f.Statuses = append(f.Statuses, model.OrderStatus(strings.TrimSpace(s)))
		}
	}

	orders, err := h.service.ListOrders(r.Context(), middleware.GetActor(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// AvailableOrders возвращает доску заказов, которые можно забрать.
func (h *Handler) AvailableOrders(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r)
	if !ok {
		h.badRequest(w, "invalid limit")
		return
	}

	orders, err := h.service.AvailableOrders(r.Context(), middleware.GetActor(r.Context()), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// GetOrder возвращает заказ по идентификатору.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.GetOrder)
}

// AttachOrder привязывает гостевой заказ к клиенту.
func (h *Handler) AttachOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.AttachClient)
}

// ClaimOrder назначает доступный заказ вызывающему бустеру.
func (h *Handler) ClaimOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.Claim)
}

// CancelOrder отменяет заказ.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.Cancel)
}

// ReleaseOrder выставляет оплаченный заказ на доску.
func (h *Handler) ReleaseOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.service.Release)
}

type orderFunc func(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)

func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request, fn orderFunc) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	o, err := fn(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

type assignRequest struct {
	BoosterID int64 `json:"booster_id"`
}

// AssignOrder назначает заказ бустеру по решению администратора.
func (h *Handler) AssignOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil || req.BoosterID <= 0 {
		h.badRequest(w, "invalid assign body")
		return
	}

	o, err := h.service.Assign(r.Context(), middleware.GetActor(r.Context()), id, req.BoosterID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

// ReviewOrder применяет решение администратора по пруфу.
func (h *Handler) ReviewOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	var d service.ReviewDecision
	if err := decodeJSON(r, &d); err != nil {
		h.badRequest(w, "invalid review body")
		return
	}

	o, err := h.service.Review(r.Context(), middleware.GetActor(r.Context()), id, d)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

type forceStatusRequest struct {
	Status    model.OrderStatus `json:"status"`
	BoosterID *int64            `json:"booster_id,omitempty"`
}

// ForceStatus принудительно меняет статус заказа.
func (h *Handler) ForceStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	var req forceStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "invalid status body")
		return
	}

	o, err := h.service.ForceStatus(r.Context(), middleware.GetActor(r.Context()), id, req.Status, req.BoosterID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

// SubmitProof принимает скриншот из поля формы image и отправляет заказ на проверку.
func (h *Handler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	actor := middleware.GetActor(r.Context())
	if _, err := h.service.GetOrder(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.proofs.MaxBytes()+multipartOverhead)
	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "validation_failed", Message: "proof file is too large"})
			return
		}
		h.badRequest(w, "multipart field image is required")
		return
	}
	defer file.Close()

	ref, err := h.proofs.Save(file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	o, err := h.service.SubmitProof(r.Context(), actor, id, ref)
	if err != nil {
		if rmErr := h.proofs.Remove(ref); rmErr != nil {
			h.logger.Warn("failed to remove orphaned proof", zap.String("ref", ref), zap.Error(rmErr))
		}
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, o)
}

const multipartOverhead = 1 << 20

// ListMessages возвращает историю чата заказа.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	msgs, err := h.service.ListMessages(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, msgs)
}

// ChatSocket подписывает участника заказа на сообщения чата по websocket.
func (h *Handler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid order id")
		return
	}

	if _, err := h.service.GetOrder(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.chat.Subscribe(w, r, id); err != nil {
		h.logger.Debug("chat subscribe", zap.Int64("orderID", id), zap.Error(err))
	}
}
