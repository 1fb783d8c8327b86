// Package lifecycle задаёт таблицу переходов заказа и проверки ролей для каждого действия.
package lifecycle

import (
	"fmt"
	"slices"

	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
)

// Action описывает действие над заказом.
type Action string

const (
	ActionConfirmPayment Action = "confirm_payment"
	ActionRelease        Action = "release"
	ActionClaim          Action = "claim"
	ActionAssign         Action = "assign"
	ActionSubmitProof    Action = "submit_proof"
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionCancel         Action = "cancel"
)

var open = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusActive,
	model.OrderStatusAvailable,
	model.OrderStatusInProgress,
	model.OrderStatusAwaitingApproval,
}

// Rule описывает один переход: целевой статус и допустимые исходные статусы для каждой роли.
type Rule struct {
	To   model.OrderStatus
	From map[model.Role][]model.OrderStatus
}

var rules = map[Action]Rule{
	ActionConfirmPayment: {
		To:   model.OrderStatusActive,
		From: map[model.Role][]model.OrderStatus{model.RoleSystem: {model.OrderStatusPending}},
	},
	ActionRelease: {
		To:   model.OrderStatusAvailable,
		From: map[model.Role][]model.OrderStatus{model.RoleAdmin: {model.OrderStatusActive}},
	},
	ActionClaim: {
		To:   model.OrderStatusInProgress,
		From: map[model.Role][]model.OrderStatus{model.RoleBooster: {model.OrderStatusAvailable}},
	},
	ActionAssign: {
		To:   model.OrderStatusInProgress,
		From: map[model.Role][]model.OrderStatus{model.RoleAdmin: {model.OrderStatusAvailable}},
	},
	ActionSubmitProof: {
		To:   model.OrderStatusAwaitingApproval,
		From: map[model.Role][]model.OrderStatus{model.RoleBooster: {model.OrderStatusInProgress}},
	},
	ActionApprove: {
		To:   model.OrderStatusCompleted,
		From: map[model.Role][]model.OrderStatus{model.RoleAdmin: {model.OrderStatusAwaitingApproval}},
	},
	ActionReject: {
		To:   model.OrderStatusInProgress,
		From: map[model.Role][]model.OrderStatus{model.RoleAdmin: {model.OrderStatusAwaitingApproval}},
	},
	ActionCancel: {
		To: model.OrderStatusCancelled,
		From: map[model.Role][]model.OrderStatus{
			model.RoleAdmin:  open,
			model.RoleClient: {model.OrderStatusPending},
		},
	},
}

// Lookup возвращает правило для действия.
func Lookup(a Action) (Rule, bool) {
	r, ok := rules[a]
	return r, ok
}

// Sources возвращает статусы, из которых роль может выполнить действие.
// Если роль не допущена к действию, возвращается ошибка errs.ErrForbidden.
func Sources(a Action, role model.Role) ([]model.OrderStatus, error) {
	r, ok := rules[a]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", errs.ErrInvalidTransition, a)
	}
	from, ok := r.From[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot %s", errs.ErrForbidden, role, a)
	}
	return from, nil
}

// Check проверяет, может ли роль выполнить действие над заказом в статусе current.
func Check(a Action, role model.Role, current model.OrderStatus) error {
	from, err := Sources(a, role)
	if err != nil {
		return err
	}
	if !slices.Contains(from, current) {
		return fmt.Errorf("%w: cannot %s order in status %s", errs.ErrInvalidTransition, a, current)
	}
	return nil
}

// Edge описывает ребро графа переходов.
type Edge struct {
	Action Action
	From   model.OrderStatus
	To     model.OrderStatus
}

// Edges возвращает все рёбра таблицы переходов, кроме принудительной смены статуса.
func Edges() []Edge {
	var edges []Edge
	for a, r := range rules {
		seen := make(map[model.OrderStatus]bool)
		for _, from := range r.From {
			for _, s := range from {
				if seen[s] {
					continue
				}
				seen[s] = true
				edges = append(edges, Edge{Action: a, From: s, To: r.To})
			}
		}
	}
	return edges
}

// Allowed сообщает, есть ли в таблице ребро from → to.
func Allowed(from, to model.OrderStatus) bool {
	for _, e := range Edges() {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// ForceTarget описывает состояние заказа, важное для принудительной смены статуса.
type ForceTarget struct {
	Current    model.OrderStatus
	Target     model.OrderStatus
	HasBooster bool
	HasProof   bool
}

// CheckForce проверяет принудительную смену статуса администратором.
// Из терминальных статусов выйти нельзя; completed достижим только из awaiting_approval.
// Статусы с назначенным бустером требуют бустера, awaiting_approval дополнительно требует пруф.
func CheckForce(role model.Role, f ForceTarget) error {
	if role != model.RoleAdmin {
		return fmt.Errorf("%w: only admin can force status", errs.ErrForbidden)
	}
	if !f.Target.Valid() {
		return fmt.Errorf("%w: unknown status %q", errs.ErrValidation, f.Target)
	}
	if f.Current.Terminal() {
		return fmt.Errorf("%w: %s order cannot change status", errs.ErrInvalidTransition, f.Current)
	}
	if f.Current == f.Target {
		return fmt.Errorf("%w: order is already %s", errs.ErrInvalidTransition, f.Current)
	}
	if f.Target == model.OrderStatusCompleted && f.Current != model.OrderStatusAwaitingApproval {
		return fmt.Errorf("%w: completed is reachable only from %s", errs.ErrInvalidTransition, model.OrderStatusAwaitingApproval)
	}
	if f.Target.HoldsBooster() && !f.HasBooster {
		return fmt.Errorf("%w: status %s requires a booster", errs.ErrInvalidTransition, f.Target)
	}
	if f.Target == model.OrderStatusAwaitingApproval && !f.HasProof {
		return fmt.Errorf("%w: status %s requires a proof", errs.ErrInvalidTransition, f.Target)
	}
	return nil
}
