package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WithdrawalRequest описывает заявку бустера на выплату.
type WithdrawalRequest struct {
	Amount          decimal.Decimal       `json:"amount"`
	Destination     string                `json:"destination"`
	DestinationType model.DestinationType `json:"destination_type"`
}

// WithdrawalDecision описывает решение администратора по заявке.
type WithdrawalDecision struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}

// RequestWithdrawal создаёт заявку на вывод. Доступный баланс проверяется в той же транзакции,
// что и вставка заявки, поэтому параллельные заявки не уводят баланс в минус.
func (s *Service) RequestWithdrawal(ctx context.Context, actor model.Actor, req WithdrawalRequest) (*model.Withdrawal, error) {
	if actor.Role != model.RoleBooster {
		return nil, fmt.Errorf("%w: only boosters can request withdrawals", errs.ErrForbidden)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrValidation)
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, fmt.Errorf("%w: amount %s has more than two decimal places", errs.ErrValidation, req.Amount)
	}
	if !req.DestinationType.Valid() {
		return nil, fmt.Errorf("%w: unknown destination type %q", errs.ErrValidation, req.DestinationType)
	}
	destination := strings.TrimSpace(req.Destination)
	if err := validation.Destination(req.DestinationType, destination); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	b, err := s.boosterOf(ctx, actor)
	if err != nil {
		return nil, err
	}

	w, err := s.repo.CreateWithdrawal(ctx, model.Withdrawal{
		BoosterID:       b.ID,
		Amount:          req.Amount,
		Destination:     destination,
		DestinationType: req.DestinationType,
	}, func(l model.Ledger) error {
		available := s.calc.Compute(l).Available
		if req.Amount.GreaterThan(available) {
			return fmt.Errorf("%w: amount %s exceeds available balance %s",
				errs.ErrValidation, req.Amount.StringFixed(2), available.StringFixed(2))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal requested",
		zap.Int64("withdrawalID", w.ID),
		zap.Int64("boosterID", b.ID),
		zap.String("amount", w.Amount.StringFixed(2)),
	)

	return w, nil
}

// DecideWithdrawal одобряет или отклоняет заявку в статусе pending. Решение окончательное.
func (s *Service) DecideWithdrawal(ctx context.Context, actor model.Actor, id int64, d WithdrawalDecision) (*model.Withdrawal, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admin can decide withdrawals", errs.ErrForbidden)
	}

	status := model.WithdrawalRejected
	if d.Approve {
		status = model.WithdrawalApproved
	}

	w, err := s.repo.DecideWithdrawal(ctx, id, status, strings.TrimSpace(d.Notes), s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal decided",
		zap.Int64("withdrawalID", id),
		zap.Int64("adminID", actor.UserID),
		zap.String("status", string(status)),
	)

	return w, nil
}

// Wallet возвращает баланс бустера. Бустер видит только свой баланс.
func (s *Service) Wallet(ctx context.Context, actor model.Actor, boosterID int64) (*model.Settlement, error) {
	switch actor.Role {
	case model.RoleAdmin:
		if _, err := s.repo.GetBooster(ctx, boosterID); err != nil {
			return nil, err
		}
	case model.RoleBooster:
		b, err := s.boosterOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		if b.ID != boosterID {
			return nil, fmt.Errorf("%w: wallet of booster %d", errs.ErrForbidden, boosterID)
		}
	default:
		return nil, fmt.Errorf("%w: %s cannot view wallets", errs.ErrForbidden, actor.Role)
	}

	ledger, err := s.repo.LoadLedger(ctx, boosterID)
	if err != nil {
		return nil, err
	}

	st := s.calc.Compute(ledger)
	return &st, nil
}

// MyWallet возвращает баланс вызывающего бустера.
func (s *Service) MyWallet(ctx context.Context, actor model.Actor) (*model.Settlement, error) {
	b, err := s.boosterOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.Wallet(ctx, actor, b.ID)
}

// ListWithdrawals возвращает заявки: бустеру свои, администратору любые.
func (s *Service) ListWithdrawals(ctx context.Context, actor model.Actor, f model.WithdrawalFilter) ([]model.Withdrawal, error) {
	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleBooster:
		b, err := s.boosterOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		f.BoosterID = &b.ID
	default:
		return nil, fmt.Errorf("%w: %s cannot list withdrawals", errs.ErrForbidden, actor.Role)
	}

	switch f.Status {
	case "", model.WithdrawalPending, model.WithdrawalApproved, model.WithdrawalRejected:
	default:
		return nil, fmt.Errorf("%w: unknown withdrawal status %q", errs.ErrValidation, f.Status)
	}

	return s.repo.ListWithdrawals(ctx, f)
}
