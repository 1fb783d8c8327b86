package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/gateway"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/mmeshcher/boostmarket/internal/pricing"
	"github.com/mmeshcher/boostmarket/internal/repository"
	"github.com/mmeshcher/boostmarket/internal/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	admin  = model.Actor{UserID: 1, Role: model.RoleAdmin}
	client = model.Actor{UserID: 42, Role: model.RoleClient}
)

type recordingSink struct {
	mu   sync.Mutex
	msgs []model.ChatMessage
}

func (r *recordingSink) Publish(m model.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *recordingSink) bodies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Body)
	}
	return out
}

type fixture struct {
	svc  *Service
	repo *repository.MemoryRepository
	chat *recordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	calc, err := settlement.NewCalculator(decimal.RequireFromString("0.40"))
	require.NoError(t, err)

	repo := repository.NewMemoryRepository()
	chat := &recordingSink{}
	svc := NewService(repo, calc, chat, zaptest.NewLogger(t), decimal.RequireFromString("10000"))

	return &fixture{svc: svc, repo: repo, chat: chat}
}

func (f *fixture) booster(t *testing.T, userID int64) (model.Actor, *model.Booster) {
	t.Helper()

	b, err := f.svc.CreateBooster(context.Background(), admin, NewBooster{
		UserID:       userID,
		BoosterStats: model.BoosterStats{DisplayName: fmt.Sprintf("booster-%d", userID)},
	})
	require.NoError(t, err)

	return model.Actor{UserID: userID, Role: model.RoleBooster}, b
}

// availableOrder создаёт оплаченный заказ клиента и выставляет его на доску.
func (f *fixture) availableOrder(t *testing.T, price string) *model.Order {
	t.Helper()
	ctx := context.Background()

	clientID := client.UserID
	o, err := f.repo.CreateOrder(ctx, model.Order{
		ClientID: &clientID,
		Service:  model.ServiceEloBoost,
		Price:    decimal.RequireFromString(price),
		Status:   model.OrderStatusPending,
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(ctx, o.ID)
	require.NoError(t, err)

	o, err = f.svc.Release(ctx, admin, o.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusAvailable, o.Status)

	return o
}

func eloQuote() pricing.Quote {
	return pricing.Quote{
		Service: model.ServiceEloBoost,
		From:    pricing.Rank{Tier: pricing.TierGold, Division: 4},
		To:      pricing.Rank{Tier: pricing.TierGold, Division: 2},
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote(), Notes: " duo queue evenings "})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.Equal(t, "24.00", o.Price.StringFixed(2))
	assert.Equal(t, client.UserID, *o.ClientID)
	assert.Nil(t, o.BoosterID)
	assert.Equal(t, "duo queue evenings", o.Notes)
	assert.Equal(t, "gold 4", o.Config["from"])

	guest, err := f.svc.CreateOrder(ctx, model.Guest(), CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)
	assert.Nil(t, guest.ClientID)

	_, err = f.svc.CreateOrder(ctx, admin, CreateOrderRequest{Quote: eloQuote()})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	bad := eloQuote()
	bad.To = bad.From
	_, err = f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: bad})
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.ErrorIs(t, err, pricing.ErrInvalidSpan)
}

func TestCreateOrderPriceLimit(t *testing.T) {
	calc, err := settlement.NewCalculator(decimal.RequireFromString("0.40"))
	require.NoError(t, err)
	svc := NewService(repository.NewMemoryRepository(), calc, nil, nil, decimal.RequireFromString("20"))

	_, err = svc.CreateOrder(context.Background(), client, CreateOrderRequest{Quote: eloQuote()})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestAttachClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, model.Guest(), CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	attached, err := f.svc.AttachClient(ctx, client, o.ID)
	require.NoError(t, err)
	assert.Equal(t, client.UserID, *attached.ClientID)
	assert.Equal(t, model.OrderStatusPending, attached.Status)

	_, err = f.svc.AttachClient(ctx, model.Actor{UserID: 43, Role: model.RoleClient}, o.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = f.svc.AttachClient(ctx, model.Guest(), o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	first, err := f.svc.ConfirmPayment(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusActive, first.Status)

	second, err := f.svc.ConfirmPayment(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusActive, second.Status)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

	_, err = f.svc.Release(ctx, admin, o.ID)
	require.NoError(t, err)

	later, err := f.svc.ConfirmPayment(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAvailable, later.Status)

	_, err = f.svc.ConfirmPayment(ctx, 9999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestConfirmPaymentCancelledOrderIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, client, o.ID)
	require.NoError(t, err)

	got, err := f.svc.ConfirmPayment(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	o := f.availableOrder(t, "45.99")

	claimed, err := f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, claimed.Status)
	assert.Equal(t, b.ID, *claimed.BoosterID)

	submitted, err := f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/a.png")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAwaitingApproval, submitted.Status)

	completed, err := f.svc.Review(ctx, admin, o.ID, ReviewDecision{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, completed.Status)
	require.NotNil(t, completed.Approval)
	assert.Equal(t, admin.UserID, completed.Approval.By)

	assert.Equal(t, []string{MessageProofSubmitted, MessageApproved}, f.chat.bodies())

	msgs, err := f.svc.ListMessages(ctx, client, o.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	profile, err := f.svc.MyBooster(ctx, boosterActor)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CompletedOrders)

	_, err = f.svc.Cancel(ctx, admin, o.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusInProgress, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestConcurrentClaimExactlyOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 12
	actors := make([]model.Actor, n)
	for i := range actors {
		actors[i], _ = f.booster(t, int64(100+i))
	}

	o := f.availableOrder(t, "60.00")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []int64
		conflicts int
		other     []error
	)

	start := make(chan struct{})
	for _, a := range actors {
		wg.Add(1)
		go func(a model.Actor) {
			defer wg.Done()
			<-start
			_, err := f.svc.Claim(ctx, a, o.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, a.UserID)
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}(a)
	}
	close(start)
	wg.Wait()

	require.Empty(t, other)
	require.Len(t, winners, 1)
	assert.Equal(t, n-1, conflicts)

	got, err := f.svc.GetOrder(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, got.Status)
	require.NotNil(t, got.BoosterID)

	winner, err := f.repo.GetBoosterByUser(ctx, winners[0])
	require.NoError(t, err)
	assert.Equal(t, winner.ID, *got.BoosterID)
}

func TestClaimGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	_, err = f.svc.Claim(ctx, boosterActor, o.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.Claim(ctx, boosterActor, 9999)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.svc.Claim(ctx, client, o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.Claim(ctx, model.Actor{UserID: 777, Role: model.RoleBooster}, o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.SetBoosterActive(ctx, admin, b.ID, false)
	require.NoError(t, err)
	available := f.availableOrder(t, "10.00")
	_, err = f.svc.Claim(ctx, boosterActor, available.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestAssign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, b := f.booster(t, 500)
	_, other := f.booster(t, 501)

	o := f.availableOrder(t, "30.00")

	assigned, err := f.svc.Assign(ctx, admin, o.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *assigned.BoosterID)

	_, err = f.svc.Assign(ctx, admin, o.ID, other.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = f.svc.Assign(ctx, admin, o.ID, 9999)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.svc.Assign(ctx, client, o.ID, b.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestRejectThenResubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, _ := f.booster(t, 500)
	intruder, _ := f.booster(t, 501)

	o := f.availableOrder(t, "45.99")
	_, err := f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitProof(ctx, intruder, o.ID, "proofs/fake.png")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.SubmitProof(ctx, boosterActor, o.ID, "   ")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/a.png")
	require.NoError(t, err)

	_, err = f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/again.png")
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	rejected, err := f.svc.Review(ctx, admin, o.ID, ReviewDecision{Reason: "screenshot is cropped"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, rejected.Status)
	assert.Nil(t, rejected.ProofRef)
	assert.Nil(t, rejected.Approval)
	assert.NotNil(t, rejected.BoosterID)

	resubmitted, err := f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/b.png")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAwaitingApproval, resubmitted.Status)
	assert.Equal(t, "proofs/b.png", *resubmitted.ProofRef)

	assert.Equal(t, []string{
		MessageProofSubmitted,
		MessageRejected + ": screenshot is cropped",
		MessageProofSubmitted,
	}, f.chat.bodies())

	_, err = f.svc.Review(ctx, boosterActor, o.ID, ReviewDecision{Approve: true})
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, _ := f.booster(t, 500)

	pending, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	stranger := model.Actor{UserID: 43, Role: model.RoleClient}
	_, err = f.svc.Cancel(ctx, stranger, pending.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	cancelled, err := f.svc.Cancel(ctx, client, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	o := f.availableOrder(t, "20.00")
	_, err = f.svc.Cancel(ctx, client, o.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)

	byAdmin, err := f.svc.Cancel(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, byAdmin.Status)
	assert.Nil(t, byAdmin.BoosterID)

	_, err = f.svc.Cancel(ctx, boosterActor, o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestForceStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCompleted, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusPending, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.ForceStatus(ctx, boosterActor, o.ID, model.OrderStatusAvailable, nil)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	available, err := f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusAvailable, nil)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAvailable, available.Status)

	inProgress, err := f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusInProgress, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *inProgress.BoosterID)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCompleted, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/a.png")
	require.NoError(t, err)

	completed, err := f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCompleted, nil)
	require.NoError(t, err)
	require.NotNil(t, completed.Approval)
	assert.Equal(t, admin.UserID, completed.Approval.By)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCancelled, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	wallet, err := f.svc.MyWallet(ctx, boosterActor)
	require.NoError(t, err)
	assert.Equal(t, "9.60", wallet.Earned.StringFixed(2))
}

func TestForceStatus_CancelledIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	o, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)
	cancelled, err := f.svc.Cancel(ctx, client, o.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCompleted, &b.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusAvailable, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	got, err := f.svc.GetOrder(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	assert.Nil(t, got.Approval)

	wallet, err := f.svc.MyWallet(ctx, boosterActor)
	require.NoError(t, err)
	assert.True(t, wallet.Earned.IsZero())
	assert.True(t, wallet.Available.IsZero())

	_, err = f.svc.RequestWithdrawal(ctx, boosterActor, WithdrawalRequest{
		Amount:          decimal.RequireFromString("9.60"),
		DestinationType: model.DestinationPayPal,
		Destination:     "booster@example.com",
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestWithdrawalScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	o := f.availableOrder(t, "45.99")
	_, err := f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)
	_, err = f.svc.SubmitProof(ctx, boosterActor, o.ID, "proofs/a.png")
	require.NoError(t, err)
	_, err = f.svc.Review(ctx, admin, o.ID, ReviewDecision{Approve: true})
	require.NoError(t, err)

	wallet, err := f.svc.MyWallet(ctx, boosterActor)
	require.NoError(t, err)
	assert.Equal(t, "18.40", wallet.Earned.StringFixed(2))
	assert.Equal(t, "18.40", wallet.Available.StringFixed(2))

	req := WithdrawalRequest{
		Amount:          decimal.RequireFromString("18.40"),
		Destination:     "booster@example.com",
		DestinationType: model.DestinationPayPal,
	}
	w, err := f.svc.RequestWithdrawal(ctx, boosterActor, req)
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalPending, w.Status)

	req.Amount = decimal.RequireFromString("0.01")
	_, err = f.svc.RequestWithdrawal(ctx, boosterActor, req)
	assert.ErrorIs(t, err, errs.ErrValidation)

	list, err := f.svc.ListWithdrawals(ctx, boosterActor, model.WithdrawalFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	wallet, err = f.svc.Wallet(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "18.40", wallet.Pending.StringFixed(2))
	assert.True(t, wallet.Available.IsZero())

	rejected, err := f.svc.DecideWithdrawal(ctx, admin, w.ID, WithdrawalDecision{Notes: "wrong account"})
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalRejected, rejected.Status)

	_, err = f.svc.DecideWithdrawal(ctx, admin, w.ID, WithdrawalDecision{Approve: true})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	wallet, err = f.svc.MyWallet(ctx, boosterActor)
	require.NoError(t, err)
	assert.Equal(t, "18.40", wallet.Available.StringFixed(2))
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, _ := f.booster(t, 500)

	o := f.availableOrder(t, "100.00")
	_, err := f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)
	_, err = f.svc.ForceStatus(ctx, admin, o.ID, model.OrderStatusCompleted, nil)
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RequestWithdrawal(ctx, boosterActor, WithdrawalRequest{
				Amount:          decimal.RequireFromString("15.00"),
				Destination:     "4111 1111 1111 1111",
				DestinationType: model.DestinationBankCard,
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ok)

	wallet, err := f.svc.MyWallet(ctx, boosterActor)
	require.NoError(t, err)
	assert.False(t, wallet.Available.IsNegative())
	assert.Equal(t, "10.00", wallet.Available.StringFixed(2))
}

func TestRequestWithdrawalValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, _ := f.booster(t, 500)

	tests := []struct {
		name    string
		actor   model.Actor
		req     WithdrawalRequest
		wantErr error
	}{
		{"zero amount", boosterActor, WithdrawalRequest{Amount: decimal.Zero, Destination: "a@b.io", DestinationType: model.DestinationPayPal}, errs.ErrValidation},
		{"negative amount", boosterActor, WithdrawalRequest{Amount: decimal.NewFromInt(-5), Destination: "a@b.io", DestinationType: model.DestinationPayPal}, errs.ErrValidation},
		{"sub-cent amount", boosterActor, WithdrawalRequest{Amount: decimal.RequireFromString("1.005"), Destination: "a@b.io", DestinationType: model.DestinationPayPal}, errs.ErrValidation},
		{"unknown type", boosterActor, WithdrawalRequest{Amount: decimal.NewFromInt(1), Destination: "a@b.io", DestinationType: "venmo"}, errs.ErrValidation},
		{"bad iban", boosterActor, WithdrawalRequest{Amount: decimal.NewFromInt(1), Destination: "GB00", DestinationType: model.DestinationIBAN}, errs.ErrValidation},
		{"no balance", boosterActor, WithdrawalRequest{Amount: decimal.NewFromInt(1), Destination: "a@b.io", DestinationType: model.DestinationPayPal}, errs.ErrValidation},
		{"client", client, WithdrawalRequest{Amount: decimal.NewFromInt(1), Destination: "a@b.io", DestinationType: model.DestinationPayPal}, errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RequestWithdrawal(ctx, tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, _ := f.booster(t, 500)
	otherBooster, _ := f.booster(t, 501)

	o := f.availableOrder(t, "20.00")

	_, err := f.svc.GetOrder(ctx, otherBooster, o.ID)
	require.NoError(t, err)

	board, err := f.svc.AvailableOrders(ctx, boosterActor, 10)
	require.NoError(t, err)
	assert.Len(t, board, 1)

	_, err = f.svc.Claim(ctx, boosterActor, o.ID)
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, otherBooster, o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.GetOrder(ctx, model.Actor{UserID: 43, Role: model.RoleClient}, o.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	mine, err := f.svc.ListOrders(ctx, boosterActor, model.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.ListOrders(ctx, otherBooster, model.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.svc.ListOrders(ctx, model.Guest(), model.OrderFilter{})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.ListOrders(ctx, admin, model.OrderFilter{Statuses: []model.OrderStatus{"archived"}})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestBoosterProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boosterActor, b := f.booster(t, 500)

	_, err := f.svc.CreateBooster(ctx, admin, NewBooster{UserID: 500, BoosterStats: model.BoosterStats{DisplayName: "dup"}})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = f.svc.CreateBooster(ctx, boosterActor, NewBooster{UserID: 600, BoosterStats: model.BoosterStats{DisplayName: "x"}})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = f.svc.UpdateBooster(ctx, admin, b.ID, model.BoosterStats{DisplayName: "x", WinRate: decimal.NewFromInt(101)})
	assert.ErrorIs(t, err, errs.ErrValidation)

	updated, err := f.svc.UpdateBooster(ctx, admin, b.ID, model.BoosterStats{
		DisplayName: "Faker", RankLabel: "Challenger", WinRate: decimal.RequireFromString("64.2"), GamesPlayed: 900,
	})
	require.NoError(t, err)
	assert.Equal(t, "Challenger", updated.RankLabel)

	_, err = f.svc.GetBooster(ctx, model.Actor{UserID: 501, Role: model.RoleBooster}, b.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	own, err := f.svc.GetBooster(ctx, boosterActor, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Faker", own.DisplayName)
}

type stubGateway struct {
	mu       sync.Mutex
	payments map[int64]*gateway.Payment
	calls    int
}

func (g *stubGateway) PaymentStatus(_ context.Context, orderID int64) (*gateway.Payment, int, time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	p, ok := g.payments[orderID]
	if !ok {
		return nil, 404, 0, nil
	}
	return p, 200, 0, nil
}

func TestReconcileBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paid, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)
	unpaid, err := f.svc.CreateOrder(ctx, client, CreateOrderRequest{Quote: eloQuote()})
	require.NoError(t, err)

	gw := &stubGateway{payments: map[int64]*gateway.Payment{
		paid.ID:   {OrderID: paid.ID, Status: gateway.StatusSucceeded},
		unpaid.ID: {OrderID: unpaid.ID, Status: gateway.StatusPending},
	}}

	f.svc.reconcileBatch(ctx, gw)

	got, err := f.svc.GetOrder(ctx, admin, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusActive, got.Status)

	got, err = f.svc.GetOrder(ctx, admin, unpaid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.Equal(t, 2, gw.calls)
}

func TestRunReconciliationStopsOnCancel(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.svc.RunReconciliation(ctx, &stubGateway{}, 10*time.Millisecond)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("reconciliation did not stop after cancel")
	}
}
