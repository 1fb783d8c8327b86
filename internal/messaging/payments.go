package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StatusSucceeded единственный статус события, подтверждающий оплату.
const StatusSucceeded = "succeeded"

// PaymentEvent описывает сообщение платёжного шлюза.
type PaymentEvent struct {
	EventID uuid.UUID `json:"event_id"`
	OrderID int64     `json:"order_id"`
	Status  string    `json:"status"`
	PaidAt  time.Time `json:"paid_at"`
}

// PaymentConfirmer подтверждает оплату заказа.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, orderID int64) (*model.Order, error)
}

// PaymentHandler переводит платёжные события в подтверждение оплаты.
type PaymentHandler struct {
	confirmer PaymentConfirmer
	logger    *zap.Logger
}

// NewPaymentHandler создаёт обработчик платёжных событий.
func NewPaymentHandler(confirmer PaymentConfirmer, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{confirmer: confirmer, logger: logger}
}

// Handle обрабатывает одно сообщение: битые события и события по несуществующим заказам
// отбрасываются, ошибки хранилища возвращают сообщение в очередь.
func (h *PaymentHandler) Handle(ctx context.Context, msg amqp.Delivery) {
	var evt PaymentEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		h.logger.Error("invalid payment event", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}
	if evt.OrderID <= 0 {
		h.logger.Error("payment event without order id", zap.Stringer("eventID", evt.EventID))
		_ = msg.Nack(false, false)
		return
	}

	if err := h.apply(ctx, evt); err != nil {
		requeue := errors.Is(err, errs.ErrStorageUnavailable)
		h.logger.Error("apply payment event",
			zap.Stringer("eventID", evt.EventID),
			zap.Int64("orderID", evt.OrderID),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		_ = msg.Nack(false, requeue)
		return
	}

	_ = msg.Ack(false)
}

func (h *PaymentHandler) apply(ctx context.Context, evt PaymentEvent) error {
	if evt.Status != StatusSucceeded {
		h.logger.Debug("payment event skipped",
			zap.Int64("orderID", evt.OrderID),
			zap.String("status", evt.Status),
		)
		return nil
	}

	o, err := h.confirmer.ConfirmPayment(ctx, evt.OrderID)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}

	h.logger.Info("payment confirmed from queue",
		zap.Stringer("eventID", evt.EventID),
		zap.Int64("orderID", o.ID),
		zap.String("status", string(o.Status)),
	)
	return nil
}
