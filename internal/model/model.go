// Package model содержит доменные сущности маркетплейса бустинга.
package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role описывает роль вызывающего.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleClient  Role = "client"
	RoleBooster Role = "booster"
	RoleAdmin   Role = "admin"
	// RoleSystem используется внутренними источниками: подтверждением оплаты и сверкой со шлюзом.
	// Не может быть получена из токена.
	RoleSystem Role = "system"
)

// Valid сообщает, известна ли роль пользователя.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleClient, RoleBooster, RoleAdmin:
		return true
	}
	return false
}

// Actor идентифицирует пользователя, от имени которого вызывается операция.
type Actor struct {
	UserID int64
	Role   Role
}

// Guest возвращает анонимного вызывающего.
func Guest() Actor {
	return Actor{Role: RoleGuest}
}

// System возвращает вызывающего для внутренних источников событий.
func System() Actor {
	return Actor{Role: RoleSystem}
}

// OrderStatus описывает стадию жизненного цикла заказа.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusActive           OrderStatus = "active"
	OrderStatusAvailable        OrderStatus = "available"
	OrderStatusInProgress       OrderStatus = "in_progress"
	OrderStatusAwaitingApproval OrderStatus = "awaiting_approval"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// OrderStatuses перечисляет все статусы в порядке жизненного цикла.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusActive,
	OrderStatusAvailable,
	OrderStatusInProgress,
	OrderStatusAwaitingApproval,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid сообщает, известен ли статус.
func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses, s)
}

// Terminal сообщает, что из статуса нет исходящих переходов.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// HoldsBooster сообщает, что в этом статусе у заказа назначен бустер.
func (s OrderStatus) HoldsBooster() bool {
	return s == OrderStatusInProgress || s == OrderStatusAwaitingApproval || s == OrderStatusCompleted
}

// HoldsProof сообщает, что в этом статусе у заказа сохранён пруф выполнения.
func (s OrderStatus) HoldsProof() bool {
	return s == OrderStatusAwaitingApproval || s == OrderStatusCompleted
}

// ServiceType описывает категорию услуги.
type ServiceType string

const (
	ServiceEloBoost ServiceType = "elo-boost"
	ServiceDuoBoost ServiceType = "duo-boost"
	ServiceMD10     ServiceType = "md10"
	ServiceWins     ServiceType = "wins"
	ServiceCoach    ServiceType = "coach"
)

// Valid сообщает, известна ли категория услуги.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceEloBoost, ServiceDuoBoost, ServiceMD10, ServiceWins, ServiceCoach:
		return true
	}
	return false
}

// Approval фиксирует, кто и когда подтвердил выполнение заказа.
// Присутствует только у заказов в статусе completed.
type Approval struct {
	By int64     `json:"by"`
	At time.Time `json:"at"`
}

// Order описывает заказ на услугу бустинга.
type Order struct {
	ID        int64           `json:"id"`
	ClientID  *int64          `json:"client_id,omitempty"`
	BoosterID *int64          `json:"booster_id,omitempty"`
	Service   ServiceType     `json:"service"`
	Config    map[string]any  `json:"config"`
	Price     decimal.Decimal `json:"price"`
	Status    OrderStatus     `json:"status"`
	Notes     string          `json:"notes"`
	ProofRef  *string         `json:"proof_ref,omitempty"`
	Approval  *Approval       `json:"approval,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderFilter ограничивает выборку заказов.
type OrderFilter struct {
	Statuses  []OrderStatus
	ClientID  *int64
	BoosterID *int64
	Limit     int
}

// Matches сообщает, попадает ли заказ под фильтр.
func (f OrderFilter) Matches(o Order) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	if f.ClientID != nil && (o.ClientID == nil || *o.ClientID != *f.ClientID) {
		return false
	}
	if f.BoosterID != nil && (o.BoosterID == nil || *o.BoosterID != *f.BoosterID) {
		return false
	}
	return true
}

// Booster описывает профиль исполнителя, привязанный к учётной записи пользователя.
type Booster struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	DisplayName     string          `json:"display_name"`
	GameAccount     string          `json:"game_account"`
	RankLabel       string          `json:"rank_label"`
	WinRate         decimal.Decimal `json:"win_rate"`
	GamesPlayed     int             `json:"games_played"`
	CompletedOrders int             `json:"completed_orders"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BoosterStats содержит редактируемые администратором поля профиля.
type BoosterStats struct {
	DisplayName string          `json:"display_name"`
	GameAccount string          `json:"game_account"`
	RankLabel   string          `json:"rank_label"`
	WinRate     decimal.Decimal `json:"win_rate"`
	GamesPlayed int             `json:"games_played"`
}

// WithdrawalStatus описывает состояние заявки на вывод.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// DestinationType описывает тип реквизитов для выплаты.
type DestinationType string

const (
	DestinationPayPal   DestinationType = "paypal"
	DestinationBankCard DestinationType = "bank_card"
	DestinationIBAN     DestinationType = "iban"
	DestinationCrypto   DestinationType = "crypto"
)

// Valid сообщает, входит ли тип реквизитов в допустимый набор.
func (t DestinationType) Valid() bool {
	switch t {
	case DestinationPayPal, DestinationBankCard, DestinationIBAN, DestinationCrypto:
		return true
	}
	return false
}

// Withdrawal описывает заявку бустера на выплату заработанных средств.
type Withdrawal struct {
	ID              int64            `json:"id"`
	BoosterID       int64            `json:"booster_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Destination     string           `json:"destination"`
	DestinationType DestinationType  `json:"destination_type"`
	Status          WithdrawalStatus `json:"status"`
	AdminNotes      string           `json:"admin_notes"`
	CreatedAt       time.Time        `json:"created_at"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty"`
}

// WithdrawalFilter ограничивает выборку заявок на вывод.
type WithdrawalFilter struct {
	BoosterID *int64
	Status    WithdrawalStatus
	Limit     int
}

// Matches сообщает, попадает ли заявка под фильтр.
func (f WithdrawalFilter) Matches(w Withdrawal) bool {
	if f.BoosterID != nil && w.BoosterID != *f.BoosterID {
		return false
	}
	return f.Status == "" || w.Status == f.Status
}

// Ledger содержит исходные данные для расчёта баланса бустера.
type Ledger struct {
	CompletedPrices []decimal.Decimal
	Approved        decimal.Decimal
	Pending         decimal.Decimal
}

// Settlement содержит производный баланс бустера.
type Settlement struct {
	Earned    decimal.Decimal `json:"earned"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
	Pending   decimal.Decimal `json:"pending"`
	Available decimal.Decimal `json:"available"`
}

// ChatMessage описывает сообщение в ветке чата заказа.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	OrderID   int64     `json:"order_id"`
	System    bool      `json:"system"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
