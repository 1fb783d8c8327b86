package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
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

var (
	_ store = (*MemoryRepository)(nil)
	_ store = (*PostgresRepository)(nil)
)

func ptr[T any](v T) *T { return &v }

// runStoreContract проверяет одинаковое поведение хранилищ.
func runStoreContract(t *testing.T, s store) {
	ctx := context.Background()

	booster, err := s.CreateBooster(ctx, model.Booster{
		UserID: 500, DisplayName: "Faker", RankLabel: "Challenger", WinRate: decimal.RequireFromString("61.5"), Active: true,
	})
	require.NoError(t, err)

	_, err = s.CreateBooster(ctx, model.Booster{UserID: 500, DisplayName: "dup"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	byUser, err := s.GetBoosterByUser(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, booster.ID, byUser.ID)

	order, err := s.CreateOrder(ctx, model.Order{
		ClientID: ptr(int64(42)),
		Service:  model.ServiceEloBoost,
		Config:   map[string]any{"from": "gold 4"},
		Price:    decimal.RequireFromString("45.99"),
		Status:   model.OrderStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "45.99", order.Price.StringFixed(2))
	assert.Equal(t, "gold 4", order.Config["from"])

	_, err = s.GetOrder(ctx, order.ID+1000)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	t.Run("failed precondition reports current state", func(t *testing.T) {
		_, err := s.TransitionOrder(ctx, order.ID, model.OrderTransition{
			From: []model.OrderStatus{model.OrderStatusAvailable},
			To:   model.OrderStatusInProgress,
		})
		var pe *PreconditionError
		require.True(t, errors.As(err, &pe), "got %v", err)
		assert.Equal(t, model.OrderStatusPending, pe.Current.Status)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := s.TransitionOrder(ctx, order.ID+1000, model.OrderTransition{
			From: []model.OrderStatus{model.OrderStatusPending},
			To:   model.OrderStatusActive,
		})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	step := func(from, to model.OrderStatus, mut func(*model.OrderTransition)) *model.Order {
		t.Helper()
		tr := model.OrderTransition{From: []model.OrderStatus{from}, To: to}
		if mut != nil {
			mut(&tr)
		}
		o, err := s.TransitionOrder(ctx, order.ID, tr)
		require.NoError(t, err)
		assert.Equal(t, to, o.Status)
		return o
	}

	step(model.OrderStatusPending, model.OrderStatusActive, nil)
	step(model.OrderStatusActive, model.OrderStatusAvailable, nil)
	claimed := step(model.OrderStatusAvailable, model.OrderStatusInProgress, func(tr *model.OrderTransition) {
		tr.Unassigned = true
		tr.SetBooster = &booster.ID
	})
	require.NotNil(t, claimed.BoosterID)
	assert.Equal(t, booster.ID, *claimed.BoosterID)

	msg := model.ChatMessage{
		ID: uuid.New(), OrderID: order.ID, System: true, Body: "Proof of completion submitted, awaiting admin review",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	submitted := step(model.OrderStatusInProgress, model.OrderStatusAwaitingApproval, func(tr *model.OrderTransition) {
		tr.Booster = &booster.ID
		tr.SetProof = ptr("proofs/a.png")
		tr.Message = &msg
	})
	require.NotNil(t, submitted.ProofRef)

	msgs, err := s.ListMessages(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.ID, msgs[0].ID)
	assert.True(t, msgs[0].System)

	rejected := step(model.OrderStatusAwaitingApproval, model.OrderStatusInProgress, nil)
	assert.Nil(t, rejected.ProofRef)
	assert.NotNil(t, rejected.BoosterID)

	step(model.OrderStatusInProgress, model.OrderStatusAwaitingApproval, func(tr *model.OrderTransition) {
		tr.SetProof = ptr("proofs/b.png")
	})
	approvedAt := time.Now().UTC().Truncate(time.Second)
	completed := step(model.OrderStatusAwaitingApproval, model.OrderStatusCompleted, func(tr *model.OrderTransition) {
		tr.SetApprove = &model.Approval{By: 1, At: approvedAt}
		tr.CountCompletion = true
	})
	require.NotNil(t, completed.Approval)
	assert.Equal(t, int64(1), completed.Approval.By)
	assert.True(t, approvedAt.Equal(completed.Approval.At))

	b, err := s.GetBooster(ctx, booster.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.CompletedOrders)

	list, err := s.ListOrders(ctx, model.OrderFilter{BoosterID: &booster.ID, Statuses: []model.OrderStatus{model.OrderStatusCompleted}})
	require.NoError(t, err)
	require.Len(t, list, 1)

	ledger, err := s.LoadLedger(ctx, booster.ID)
	require.NoError(t, err)
	require.Len(t, ledger.CompletedPrices, 1)
	assert.True(t, decimal.RequireFromString("45.99").Equal(ledger.CompletedPrices[0]))

	t.Run("withdrawal lifecycle", func(t *testing.T) {
		w, err := s.CreateWithdrawal(ctx, model.Withdrawal{
			BoosterID: booster.ID, Amount: decimal.RequireFromString("10.00"),
			Destination: "booster@example.com", DestinationType: model.DestinationPayPal,
		}, func(model.Ledger) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, model.WithdrawalPending, w.Status)

		rejectErr := errors.New("over balance")
		_, err = s.CreateWithdrawal(ctx, model.Withdrawal{
			BoosterID: booster.ID, Amount: decimal.RequireFromString("1.00"),
			Destination: "booster@example.com", DestinationType: model.DestinationPayPal,
		}, func(l model.Ledger) error {
			assert.True(t, decimal.RequireFromString("10").Equal(l.Pending))
			return rejectErr
		})
		assert.ErrorIs(t, err, rejectErr)

		_, err = s.CreateWithdrawal(ctx, model.Withdrawal{BoosterID: booster.ID + 1000, Amount: decimal.NewFromInt(1)},
			func(model.Ledger) error { return nil })
		assert.ErrorIs(t, err, errs.ErrNotFound)

		decided, err := s.DecideWithdrawal(ctx, w.ID, model.WithdrawalApproved, "paid", time.Now())
		require.NoError(t, err)
		assert.Equal(t, model.WithdrawalApproved, decided.Status)
		assert.NotNil(t, decided.ProcessedAt)

		_, err = s.DecideWithdrawal(ctx, w.ID, model.WithdrawalRejected, "", time.Now())
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = s.DecideWithdrawal(ctx, w.ID+1000, model.WithdrawalRejected, "", time.Now())
		assert.ErrorIs(t, err, errs.ErrNotFound)

		ledger, err := s.LoadLedger(ctx, booster.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10").Equal(ledger.Approved))
		assert.True(t, ledger.Pending.IsZero())

		ws, err := s.ListWithdrawals(ctx, model.WithdrawalFilter{BoosterID: &booster.ID, Status: model.WithdrawalApproved})
		require.NoError(t, err)
		assert.Len(t, ws, 1)
	})

	t.Run("booster profile updates", func(t *testing.T) {
		updated, err := s.UpdateBooster(ctx, booster.ID, model.BoosterStats{
			DisplayName: "Faker", GameAccount: "hide on bush", RankLabel: "Challenger",
			WinRate: decimal.RequireFromString("63.25"), GamesPlayed: 1200,
		})
		require.NoError(t, err)
		assert.Equal(t, "hide on bush", updated.GameAccount)
		assert.Equal(t, 1200, updated.GamesPlayed)

		inactive, err := s.SetBoosterActive(ctx, booster.ID, false)
		require.NoError(t, err)
		assert.False(t, inactive.Active)

		_, err = s.SetBoosterActive(ctx, booster.ID+1000, true)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("concurrent claim has one winner", func(t *testing.T) {
		const n = 16
		boosters := make([]int64, n)
		for i := range boosters {
			b, err := s.CreateBooster(ctx, model.Booster{UserID: int64(1000 + i), DisplayName: "claimer", Active: true})
			require.NoError(t, err)
			boosters[i] = b.ID
		}

		o, err := s.CreateOrder(ctx, model.Order{
			Service: model.ServiceEloBoost, Price: decimal.NewFromInt(50), Status: model.OrderStatusAvailable,
		})
		require.NoError(t, err)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			winners []int64
			lost    int
			other   []error
		)
		for _, id := range boosters {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := s.TransitionOrder(ctx, o.ID, model.OrderTransition{
					From:       []model.OrderStatus{model.OrderStatusAvailable},
					To:         model.OrderStatusInProgress,
					Unassigned: true,
					SetBooster: &id,
				})
				mu.Lock()
				defer mu.Unlock()
				var pe *PreconditionError
				switch {
				case err == nil:
					winners = append(winners, id)
				case errors.As(err, &pe):
					lost++
				default:
					other = append(other, err)
				}
			}(id)
		}
		wg.Wait()

		require.Empty(t, other)
		require.Len(t, winners, 1)
		assert.Equal(t, n-1, lost)

		got, err := s.GetOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusInProgress, got.Status)
		require.NotNil(t, got.BoosterID)
		assert.Equal(t, winners[0], *got.BoosterID)
	})
}
