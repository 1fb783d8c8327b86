// Package service реализует движок жизненного цикла заказов и расчётов с бустерами.
package service

import (
	"context"
	"time"

	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/settlement"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	Ping(ctx context.Context) error

	CreateOrder(ctx context.Context, o model.Order) (*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error)
	TransitionOrder(ctx context.Context, id int64, t model.OrderTransition) (*model.Order, error)
	ListMessages(ctx context.Context, orderID int64) ([]model.ChatMessage, error)

	CreateBooster(ctx context.Context, b model.Booster) (*model.Booster, error)
	GetBooster(ctx context.Context, id int64) (*model.Booster, error)
	GetBoosterByUser(ctx context.Context, userID int64) (*model.Booster, error)
	UpdateBooster(ctx context.Context, id int64, s model.BoosterStats) (*model.Booster, error)
	SetBoosterActive(ctx context.Context, id int64, active bool) (*model.Booster, error)

	LoadLedger(ctx context.Context, boosterID int64) (model.Ledger, error)
	CreateWithdrawal(ctx context.Context, w model.Withdrawal, check func(model.Ledger) error) (*model.Withdrawal, error)
	DecideWithdrawal(ctx context.Context, id int64, status model.WithdrawalStatus, notes string, at time.Time) (*model.Withdrawal, error)
	ListWithdrawals(ctx context.Context, f model.WithdrawalFilter) ([]model.Withdrawal, error)
}

// ChatSink получает системные сообщения после того, как переход зафиксирован в хранилище.
type ChatSink interface {
	Publish(msg model.ChatMessage)
}

type nopSink struct{}

func (nopSink) Publish(model.ChatMessage) {}

// Service содержит бизнес-логику движка заказов.
type Service struct {
	repo     Repository
	calc     *settlement.Calculator
	chat     ChatSink
	logger   *zap.Logger
	maxPrice decimal.Decimal
	now      func() time.Time
}

// NewService создаёт сервис. Калькулятор расчётов общий для сводки кошелька и проверки заявок на вывод.
func NewService(repo Repository, calc *settlement.Calculator, chat ChatSink, logger *zap.Logger, maxPrice decimal.Decimal) *Service {
	if chat == nil {
		chat = nopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		calc:     calc,
		chat:     chat,
		logger:   logger,
		maxPrice: maxPrice,
		now:      time.Now,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Ping проверяет доступность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
