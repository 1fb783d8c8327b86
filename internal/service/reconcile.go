package service

import (
	"context"
	"net/http"
	"time"

	"github.com/mmeshcher/boostmarket/internal/gateway"
	"go.uber.org/zap"
)

// PaymentGateway описывает запрос статуса оплаты у платёжного шлюза.
type PaymentGateway interface {
	PaymentStatus(ctx context.Context, orderID int64) (*gateway.Payment, int, time.Duration, error)
}

const reconcileLimit = 100

// RunReconciliation периодически сверяет заказы в статусе pending со шлюзом и подтверждает
// оплаченные. Работает до отмены ctx.
func (s *Service) RunReconciliation(ctx context.Context, gw PaymentGateway, interval time.Duration) error {
	if gw == nil {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.reconcileBatch(ctx, gw)
		}
	}
}

func (s *Service) reconcileBatch(ctx context.Context, gw PaymentGateway) {
	orders, err := s.PendingOrders(ctx, reconcileLimit)
	if err != nil {
		s.logger.Warn("load pending orders", zap.Error(err))
		return
	}

	for _, o := range orders {
		payment, statusCode, retryAfter, err := gw.PaymentStatus(ctx, o.ID)
		if err != nil {
			s.logger.Debug("payment status", zap.Int64("orderID", o.ID), zap.Error(err))
			continue
		}

		if statusCode == http.StatusTooManyRequests {
			if retryAfter > 0 {
				timer := time.NewTimer(retryAfter)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
			continue
		}

		if payment == nil || payment.Status != gateway.StatusSucceeded {
			continue
		}

		if _, err := s.ConfirmPayment(ctx, o.ID); err != nil {
			s.logger.Error("confirm payment from reconciliation", zap.Int64("orderID", o.ID), zap.Error(err))
			continue
		}

		s.logger.Info("payment reconciled", zap.Int64("orderID", o.ID))
	}
}
