package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/lifecycle"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/pricing"
	"github.com/mmeshcher/boostmarket/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Тексты системных сообщений в чате заказа.
const (
	MessageProofSubmitted = "Proof of completion submitted, awaiting admin review"
	MessageApproved       = "Order approved and completed"
	MessageRejected       = "Proof rejected, please resubmit"
)

// CreateOrderRequest описывает оформление нового заказа.
type CreateOrderRequest struct {
	Quote  pricing.Quote  `json:"quote"`
	Config map[string]any `json:"config,omitempty"`
	Notes  string         `json:"notes,omitempty"`
}

// ReviewDecision описывает решение администратора по пруфу.
type ReviewDecision struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

// QuotePrice возвращает цену услуги без создания заказа.
func (s *Service) QuotePrice(q pricing.Quote) (decimal.Decimal, error) {
	price, err := pricing.Price(q)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be positive", errs.ErrValidation)
	}
	if price.GreaterThan(s.maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: price %s exceeds limit %s", errs.ErrValidation, price.StringFixed(2), s.maxPrice.StringFixed(2))
	}
	return price, nil
}

// CreateOrder оформляет заказ в статусе pending. Гость оформляет заказ без клиента.
func (s *Service) CreateOrder(ctx context.Context, actor model.Actor, req CreateOrderRequest) (*model.Order, error) {
	var clientID *int64
	switch actor.Role {
	case model.RoleGuest:
	case model.RoleClient:
		id := actor.UserID
		clientID = &id
	default:
		return nil, fmt.Errorf("%w: %s cannot place orders", errs.ErrForbidden, actor.Role)
	}

	price, err := s.QuotePrice(req.Quote)
	if err != nil {
		return nil, err
	}

	cfg := maps.Clone(req.Config)
	if cfg == nil {
		cfg = make(map[string]any)
	}
	maps.Copy(cfg, quoteConfig(req.Quote))

	o, err := s.repo.CreateOrder(ctx, model.Order{
		ClientID: clientID,
		Service:  req.Quote.Service,
		Config:   cfg,
		Price:    price,
		Status:   model.OrderStatusPending,
		Notes:    strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		zap.Int64("orderID", o.ID),
		zap.String("service", string(o.Service)),
		zap.String("price", o.Price.StringFixed(2)),
	)

	return o, nil
}

func quoteConfig(q pricing.Quote) map[string]any {
	cfg := map[string]any{}
	switch q.Service {
	case model.ServiceEloBoost, model.ServiceDuoBoost:
		cfg["from"] = q.From.String()
		cfg["to"] = q.To.String()
		if q.Progress != "" {
			cfg["progress"] = q.Progress
		}
	case model.ServiceMD10, model.ServiceWins:
		cfg["tier"] = string(q.From.Tier)
	}
	if q.Quantity > 0 {
		cfg["quantity"] = q.Quantity
	}
	if len(q.Modifiers) > 0 {
		mods := make([]string, 0, len(q.Modifiers))
		for _, m := range q.Modifiers {
			mods = append(mods, string(m))
		}
		cfg["modifiers"] = mods
	}
	return cfg
}

// AttachClient привязывает гостевой заказ к клиенту. Заказ с уже назначенным клиентом даёт errs.ErrConflict.
func (s *Service) AttachClient(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	if actor.Role != model.RoleClient {
		return nil, fmt.Errorf("%w: only clients can claim guest orders", errs.ErrForbidden)
	}

	clientID := actor.UserID
	o, err := s.repo.TransitionOrder(ctx, orderID, model.OrderTransition{
		From:      model.OrderStatuses,
		GuestOnly: true,
		SetClient: &clientID,
	})
	if err != nil {
		var pe *repository.PreconditionError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: order %d already belongs to a client", errs.ErrConflict, orderID)
		}
		return nil, err
	}

	s.logger.Info("guest order attached", zap.Int64("orderID", orderID), zap.Int64("clientID", clientID))
	return o, nil
}

// ConfirmPayment переводит заказ из pending в active. Повторное подтверждение
// для заказа, ушедшего дальше pending, ничего не меняет и возвращает текущий заказ.
func (s *Service) ConfirmPayment(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := s.transition(ctx, model.System(), orderID, lifecycle.ActionConfirmPayment, model.OrderTransition{})
	if err == nil {
		return o, nil
	}

	var pe *repository.PreconditionError
	if errors.As(err, &pe) && pe.Current.Status != model.OrderStatusPending {
		s.logger.Debug("duplicate payment confirmation",
			zap.Int64("orderID", orderID),
			zap.String("status", string(pe.Current.Status)),
		)
		current := pe.Current
		return &current, nil
	}

	return nil, explain(model.System(), lifecycle.ActionConfirmPayment, orderID, model.OrderTransition{}, err)
}

// Release выставляет оплаченный заказ на доску доступных заказов.
func (s *Service) Release(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	return s.apply(ctx, actor, orderID, lifecycle.ActionRelease, model.OrderTransition{})
}

// Claim назначает заказ бустеру, если он всё ещё доступен. Из нескольких одновременных
// попыток успешна ровно одна; остальные получают errs.ErrConflict.
func (s *Service) Claim(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	if _, err := lifecycle.Sources(lifecycle.ActionClaim, actor.Role); err != nil {
		return nil, err
	}

	b, err := s.boosterOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, fmt.Errorf("%w: booster profile %d is inactive", errs.ErrForbidden, b.ID)
	}

	return s.apply(ctx, actor, orderID, lifecycle.ActionClaim, model.OrderTransition{
		Unassigned: true,
		SetBooster: &b.ID,
	})
}

// Assign назначает заказ бустеру по решению администратора с тем же атомарным условием, что и Claim.
func (s *Service) Assign(ctx context.Context, actor model.Actor, orderID, boosterID int64) (*model.Order, error) {
	if _, err := lifecycle.Sources(lifecycle.ActionAssign, actor.Role); err != nil {
		return nil, err
	}

	b, err := s.repo.GetBooster(ctx, boosterID)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, fmt.Errorf("%w: booster %d is inactive", errs.ErrValidation, boosterID)
	}

	return s.apply(ctx, actor, orderID, lifecycle.ActionAssign, model.OrderTransition{
		Unassigned: true,
		SetBooster: &b.ID,
	})
}

// SubmitProof прикладывает пруф выполнения и отправляет заказ на проверку.
// Допускается только для назначенного бустера.
func (s *Service) SubmitProof(ctx context.Context, actor model.Actor, orderID int64, proofRef string) (*model.Order, error) {
	if _, err := lifecycle.Sources(lifecycle.ActionSubmitProof, actor.Role); err != nil {
		return nil, err
	}

	proofRef = strings.TrimSpace(proofRef)
	if proofRef == "" {
		return nil, fmt.Errorf("%w: proof reference is empty", errs.ErrValidation)
	}

	b, err := s.boosterOf(ctx, actor)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, actor, orderID, lifecycle.ActionSubmitProof, model.OrderTransition{
		Booster:  &b.ID,
		SetProof: &proofRef,
		Message:  s.systemMessage(orderID, MessageProofSubmitted),
	})
}

// Review применяет решение администратора: подтверждение завершает заказ,
// отклонение возвращает его в работу и очищает пруф.
func (s *Service) Review(ctx context.Context, actor model.Actor, orderID int64, d ReviewDecision) (*model.Order, error) {
	if d.Approve {
		return s.apply(ctx, actor, orderID, lifecycle.ActionApprove, model.OrderTransition{
			SetApprove:      &model.Approval{By: actor.UserID, At: s.now().UTC()},
			CountCompletion: true,
			Message:         s.systemMessage(orderID, MessageApproved),
		})
	}

	body := MessageRejected
	if reason := strings.TrimSpace(d.Reason); reason != "" {
		body += ": " + reason
	}

	return s.apply(ctx, actor, orderID, lifecycle.ActionReject, model.OrderTransition{
		Message: s.systemMessage(orderID, body),
	})
}

// Cancel отменяет заказ. Администратор может отменить любой незавершённый заказ,
// клиент только свой заказ в статусе pending.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	var t model.OrderTransition
	if actor.Role == model.RoleClient {
		owner := actor.UserID
		t.Owner = &owner
	}
	return s.apply(ctx, actor, orderID, lifecycle.ActionCancel, t)
}

// ForceStatus принудительно меняет статус заказа по решению администратора.
// Из терминальных статусов выйти нельзя; completed достижим только из awaiting_approval
// и записывает подтверждение администратора.
func (s *Service) ForceStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus, boosterID *int64) (*model.Order, error) {
	if actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admin can force status", errs.ErrForbidden)
	}

	cur, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if boosterID != nil {
		if !target.HoldsBooster() {
			return nil, fmt.Errorf("%w: status %s cannot hold a booster", errs.ErrValidation, target)
		}
		if _, err := s.repo.GetBooster(ctx, *boosterID); err != nil {
			return nil, err
		}
	}

	err = lifecycle.CheckForce(actor.Role, lifecycle.ForceTarget{
		Current:    cur.Status,
		Target:     target,
		HasBooster: cur.BoosterID != nil || boosterID != nil,
		HasProof:   cur.ProofRef != nil,
	})
	if err != nil {
		return nil, err
	}

	t := model.OrderTransition{
		From:       []model.OrderStatus{cur.Status},
		To:         target,
		SetBooster: boosterID,
	}
	if cur.BoosterID != nil {
		t.Booster = cur.BoosterID
	} else {
		t.Unassigned = true
	}
	if target == model.OrderStatusCompleted {
		t.SetApprove = &model.Approval{By: actor.UserID, At: s.now().UTC()}
		t.CountCompletion = true
	}

	o, err := s.repo.TransitionOrder(ctx, orderID, t)
	if err != nil {
		var pe *repository.PreconditionError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: order %d changed concurrently, now %s", errs.ErrInvalidTransition, orderID, pe.Current.Status)
		}
		return nil, err
	}

	s.logger.Warn("order status forced",
		zap.Int64("orderID", orderID),
		zap.Int64("adminID", actor.UserID),
		zap.String("from", string(cur.Status)),
		zap.String("to", string(target)),
	)

	return o, nil
}

// GetOrder возвращает заказ, если вызывающий может его видеть: владелец, назначенный бустер
// или администратор. Бустеры также видят заказы на доске доступных.
func (s *Service) GetOrder(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, actor, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) canView(ctx context.Context, actor model.Actor, o *model.Order) error {
	switch actor.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleClient:
		if o.ClientID != nil && *o.ClientID == actor.UserID {
			return nil
		}
	case model.RoleBooster:
		if o.Status == model.OrderStatusAvailable {
			return nil
		}
		b, err := s.boosterOf(ctx, actor)
		if err != nil {
			return err
		}
		if o.BoosterID != nil && *o.BoosterID == b.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: order %d", errs.ErrForbidden, o.ID)
}

// ListOrders возвращает заказы вызывающего: клиенту свои, бустеру назначенные ему, администратору любые.
func (s *Service) ListOrders(ctx context.Context, actor model.Actor, f model.OrderFilter) ([]model.Order, error) {
	switch actor.Role {
	case model.RoleAdmin:
	case model.RoleClient:
		id := actor.UserID
		f.ClientID = &id
		f.BoosterID = nil
	case model.RoleBooster:
		b, err := s.boosterOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		f.BoosterID = &b.ID
		f.ClientID = nil
	default:
		return nil, fmt.Errorf("%w: %s cannot list orders", errs.ErrForbidden, actor.Role)
	}

	for _, st := range f.Statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, st)
		}
	}

	return s.repo.ListOrders(ctx, f)
}

// AvailableOrders возвращает доску заказов, которые можно забрать.
func (s *Service) AvailableOrders(ctx context.Context, actor model.Actor, limit int) ([]model.Order, error) {
	if actor.Role != model.RoleBooster && actor.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: %s cannot browse available orders", errs.ErrForbidden, actor.Role)
	}
	return s.repo.ListOrders(ctx, model.OrderFilter{
		Statuses: []model.OrderStatus{model.OrderStatusAvailable},
		Limit:    limit,
	})
}

// ListMessages возвращает ветку чата заказа.
func (s *Service) ListMessages(ctx context.Context, actor model.Actor, orderID int64) ([]model.ChatMessage, error) {
	if _, err := s.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, orderID)
}

// PendingOrders возвращает заказы, ожидающие подтверждения оплаты.
func (s *Service) PendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return s.repo.ListOrders(ctx, model.OrderFilter{
		Statuses: []model.OrderStatus{model.OrderStatusPending},
		Limit:    limit,
	})
}

func (s *Service) boosterOf(ctx context.Context, actor model.Actor) (*model.Booster, error) {
	if actor.Role != model.RoleBooster {
		return nil, fmt.Errorf("%w: caller is not a booster", errs.ErrForbidden)
	}
	b, err := s.repo.GetBoosterByUser(ctx, actor.UserID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d has no booster profile", errs.ErrForbidden, actor.UserID)
	}
	return b, err
}

func (s *Service) systemMessage(orderID int64, body string) *model.ChatMessage {
	return &model.ChatMessage{
		ID:        uuid.New(),
		OrderID:   orderID,
		System:    true,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
}

// apply выполняет переход из таблицы и переводит неудачу условия в доменную ошибку.
func (s *Service) apply(ctx context.Context, actor model.Actor, orderID int64, action lifecycle.Action, t model.OrderTransition) (*model.Order, error) {
	o, err := s.transition(ctx, actor, orderID, action, t)
	if err != nil {
		return nil, explain(actor, action, orderID, t, err)
	}
	return o, nil
}

func (s *Service) transition(ctx context.Context, actor model.Actor, orderID int64, action lifecycle.Action, t model.OrderTransition) (*model.Order, error) {
	from, err := lifecycle.Sources(action, actor.Role)
	if err != nil {
		return nil, err
	}
	rule, _ := lifecycle.Lookup(action)

	t.From = from
	t.To = rule.To

	o, err := s.repo.TransitionOrder(ctx, orderID, t)
	if err != nil {
		return nil, err
	}

	if t.Message != nil {
		s.chat.Publish(*t.Message)
	}

	s.logger.Info("order transition",
		zap.Int64("orderID", orderID),
		zap.String("action", string(action)),
		zap.String("role", string(actor.Role)),
		zap.String("status", string(o.Status)),
	)

	return o, nil
}

// explain классифицирует отказ перехода по состоянию заказа, прочитанному после неудачного условия.
func explain(actor model.Actor, action lifecycle.Action, orderID int64, t model.OrderTransition, err error) error {
	var pe *repository.PreconditionError
	if !errors.As(err, &pe) {
		return err
	}
	cur := pe.Current
	from, _ := lifecycle.Sources(action, actor.Role)

	switch {
	case t.Unassigned && cur.BoosterID != nil:
		return fmt.Errorf("%w: order %d is already taken by another booster", errs.ErrConflict, orderID)
	case action == lifecycle.ActionCancel && t.Owner != nil && (cur.ClientID == nil || *cur.ClientID != *t.Owner):
		return fmt.Errorf("%w: order %d belongs to another client", errs.ErrForbidden, orderID)
	case t.Booster != nil && (cur.BoosterID == nil || *cur.BoosterID != *t.Booster) && cur.Status == model.OrderStatusInProgress:
		return fmt.Errorf("%w: order %d is assigned to another booster", errs.ErrForbidden, orderID)
	case !slices.Contains(from, cur.Status):
		return fmt.Errorf("%w: cannot %s order %d in status %s", errs.ErrInvalidTransition, action, orderID, cur.Status)
	default:
		return fmt.Errorf("%w: order %d changed concurrently", errs.ErrInvalidTransition, orderID)
	}
}
