package model

import (
	"slices"
	"time"
)

// OrderTransition описывает атомарный условный переход заказа:
// условие проверяется и изменение применяется одной операцией хранилища.
type OrderTransition struct {
	// Условие.
	From       []OrderStatus
	Booster    *int64
	Owner      *int64
	Unassigned bool
	GuestOnly  bool

	// Изменение. Пустой To оставляет статус прежним.
	To         OrderStatus
	SetBooster *int64
	SetProof   *string
	SetApprove *Approval
	SetClient  *int64

	// Message сохраняется в чат заказа в той же транзакции.
	Message *ChatMessage
	// CountCompletion увеличивает счётчик выполненных заказов назначенного бустера.
	CountCompletion bool
}

// Matches сообщает, выполнено ли условие перехода для заказа.
func (t OrderTransition) Matches(o Order) bool {
	if !slices.Contains(t.From, o.Status) {
		return false
	}
	if t.Booster != nil && (o.BoosterID == nil || *o.BoosterID != *t.Booster) {
		return false
	}
	if t.Owner != nil && (o.ClientID == nil || *o.ClientID != *t.Owner) {
		return false
	}
	if t.Unassigned && o.BoosterID != nil {
		return false
	}
	if t.GuestOnly && o.ClientID != nil {
		return false
	}
	return true
}

// Keeps сообщает, какие поля сохраняются в целевом статусе.
// Остальные очищаются, так что бустер, пруф и подтверждение существуют только в допустимых статусах.
func (t OrderTransition) Keeps() (booster, proof, approval bool) {
	if t.To == "" {
		return true, true, true
	}
	return t.To.HoldsBooster(), t.To.HoldsProof(), t.To == OrderStatusCompleted
}

// Apply применяет изменение к заказу. Условие должно быть проверено заранее.
func (t OrderTransition) Apply(o *Order, now time.Time) {
	keepBooster, keepProof, keepApproval := t.Keeps()

	if t.SetClient != nil {
		o.ClientID = t.SetClient
	}
	if t.To != "" {
		o.Status = t.To
	}

	switch {
	case !keepBooster:
		o.BoosterID = nil
	case t.SetBooster != nil:
		o.BoosterID = t.SetBooster
	}

	switch {
	case !keepProof:
		o.ProofRef = nil
	case t.SetProof != nil:
		o.ProofRef = t.SetProof
	}

	switch {
	case !keepApproval:
		o.Approval = nil
	case t.SetApprove != nil:
		o.Approval = t.SetApprove
	}

	o.UpdatedAt = now
}
