package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

// MemoryRepository хранит данные в памяти процесса. Используется, когда DATABASE_URI не задан, и в тестах.
// Все условные переходы выполняются под одним мьютексом и дают те же гарантии, что и UPDATE ... WHERE в PostgreSQL.
type MemoryRepository struct {
	mu sync.Mutex

	now func() time.Time

	orders      map[int64]*model.Order
	boosters    map[int64]*model.Booster
	withdrawals map[int64]*model.Withdrawal
	messages    map[int64][]model.ChatMessage

	orderSeq      int64
	boosterSeq    int64
	withdrawalSeq int64
}

// NewMemoryRepository создаёт пустое хранилище в памяти.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		now:         time.Now,
		orders:      make(map[int64]*model.Order),
		boosters:    make(map[int64]*model.Booster),
		withdrawals: make(map[int64]*model.Withdrawal),
		messages:    make(map[int64][]model.ChatMessage),
	}
}

func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Config = maps.Clone(o.Config)
	return &c
}

// CreateOrder сохраняет новый заказ.
func (r *MemoryRepository) CreateOrder(_ context.Context, o model.Order) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orderSeq++
	now := r.now()
	o.ID = r.orderSeq
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.Config == nil {
		o.Config = map[string]any{}
	}

	r.orders[o.ID] = cloneOrder(&o)
	return cloneOrder(&o), nil
}

// GetOrder возвращает заказ по идентификатору.
func (r *MemoryRepository) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("get order %d: %w", id, errs.ErrNotFound)
	}
	return cloneOrder(o), nil
}

// ListOrders возвращает заказы по фильтру, новые первыми.
func (r *MemoryRepository) ListOrders(_ context.Context, f model.OrderFilter) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.Order
	for _, o := range r.orders {
		if f.Matches(*o) {
			res = append(res, *cloneOrder(o))
		}
	}

	slices.SortFunc(res, func(a, b model.Order) int {
		return int(b.ID - a.ID)
	})

	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

// TransitionOrder применяет условный переход атомарно.
func (r *MemoryRepository) TransitionOrder(_ context.Context, id int64, t model.OrderTransition) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("transition order %d: %w", id, errs.ErrNotFound)
	}
	if !t.Matches(*o) {
		return nil, &PreconditionError{Current: *cloneOrder(o)}
	}

	if t.SetBooster != nil {
		if _, ok := r.boosters[*t.SetBooster]; !ok {
			return nil, fmt.Errorf("transition order %d: %w: booster %d", id, errs.ErrNotFound, *t.SetBooster)
		}
	}

	t.Apply(o, r.now())

	if t.Message != nil {
		r.messages[id] = append(r.messages[id], *t.Message)
	}
	if t.CountCompletion && o.BoosterID != nil {
		if b, ok := r.boosters[*o.BoosterID]; ok {
			b.CompletedOrders++
			b.UpdatedAt = o.UpdatedAt
		}
	}

	return cloneOrder(o), nil
}

// ListMessages возвращает ветку чата заказа в хронологическом порядке.
func (r *MemoryRepository) ListMessages(_ context.Context, orderID int64) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.messages[orderID]), nil
}

// CreateBooster создаёт профиль бустера.
func (r *MemoryRepository) CreateBooster(_ context.Context, b model.Booster) (*model.Booster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.boosters {
		if existing.UserID == b.UserID {
			return nil, fmt.Errorf("create booster: %w: user %d already has a profile", errs.ErrConflict, b.UserID)
		}
	}

	r.boosterSeq++
	now := r.now()
	b.ID = r.boosterSeq
	b.CreatedAt = now
	b.UpdatedAt = now
	b.CompletedOrders = 0

	stored := b
	r.boosters[b.ID] = &stored
	return &b, nil
}

// GetBooster возвращает профиль бустера по идентификатору.
func (r *MemoryRepository) GetBooster(_ context.Context, id int64) (*model.Booster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boosters[id]
	if !ok {
		return nil, fmt.Errorf("get booster %d: %w", id, errs.ErrNotFound)
	}
	c := *b
	return &c, nil
}

// GetBoosterByUser возвращает профиль бустера по идентификатору пользователя.
func (r *MemoryRepository) GetBoosterByUser(_ context.Context, userID int64) (*model.Booster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.boosters {
		if b.UserID == userID {
			c := *b
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get booster of user %d: %w", userID, errs.ErrNotFound)
}

// UpdateBooster обновляет редактируемые поля профиля.
func (r *MemoryRepository) UpdateBooster(_ context.Context, id int64, s model.BoosterStats) (*model.Booster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boosters[id]
	if !ok {
		return nil, fmt.Errorf("update booster %d: %w", id, errs.ErrNotFound)
	}

	b.DisplayName = s.DisplayName
	b.GameAccount = s.GameAccount
	b.RankLabel = s.RankLabel
	b.WinRate = s.WinRate
	b.GamesPlayed = s.GamesPlayed
	b.UpdatedAt = r.now()

	c := *b
	return &c, nil
}

// SetBoosterActive включает или выключает профиль бустера.
func (r *MemoryRepository) SetBoosterActive(_ context.Context, id int64, active bool) (*model.Booster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.boosters[id]
	if !ok {
		return nil, fmt.Errorf("set booster %d active: %w", id, errs.ErrNotFound)
	}
	b.Active = active
	b.UpdatedAt = r.now()

	c := *b
	return &c, nil
}

func (r *MemoryRepository) ledgerLocked(boosterID int64) model.Ledger {
	ledger := model.Ledger{Approved: decimal.Zero, Pending: decimal.Zero}

	for _, o := range r.orders {
		if o.Status == model.OrderStatusCompleted && o.BoosterID != nil && *o.BoosterID == boosterID {
			ledger.CompletedPrices = append(ledger.CompletedPrices, o.Price)
		}
	}
	for _, w := range r.withdrawals {
		if w.BoosterID != boosterID {
			continue
		}
		switch w.Status {
		case model.WithdrawalApproved:
			ledger.Approved = ledger.Approved.Add(w.Amount)
		case model.WithdrawalPending:
			ledger.Pending = ledger.Pending.Add(w.Amount)
		}
	}

	return ledger
}

// LoadLedger возвращает исходные данные для расчёта баланса бустера.
func (r *MemoryRepository) LoadLedger(_ context.Context, boosterID int64) (model.Ledger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledgerLocked(boosterID), nil
}

// CreateWithdrawal создаёт заявку на вывод; check вызывается под тем же мьютексом, что и вставка.
func (r *MemoryRepository) CreateWithdrawal(_ context.Context, w model.Withdrawal, check func(model.Ledger) error) (*model.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boosters[w.BoosterID]; !ok {
		return nil, fmt.Errorf("lock booster %d: %w", w.BoosterID, errs.ErrNotFound)
	}

	if err := check(r.ledgerLocked(w.BoosterID)); err != nil {
		return nil, err
	}

	r.withdrawalSeq++
	w.ID = r.withdrawalSeq
	w.Status = model.WithdrawalPending
	w.CreatedAt = r.now()
	w.ProcessedAt = nil

	stored := w
	r.withdrawals[w.ID] = &stored
	return &w, nil
}

// DecideWithdrawal переводит заявку из pending в approved или rejected.
func (r *MemoryRepository) DecideWithdrawal(_ context.Context, id int64, status model.WithdrawalStatus, notes string, at time.Time) (*model.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.withdrawals[id]
	if !ok {
		return nil, fmt.Errorf("get withdrawal %d: %w", id, errs.ErrNotFound)
	}
	if w.Status != model.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal %d is %s", errs.ErrInvalidTransition, id, w.Status)
	}

	w.Status = status
	w.AdminNotes = notes
	w.ProcessedAt = &at

	c := *w
	return &c, nil
}

// ListWithdrawals возвращает заявки по фильтру, новые первыми.
func (r *MemoryRepository) ListWithdrawals(_ context.Context, f model.WithdrawalFilter) ([]model.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []model.Withdrawal
	for _, w := range r.withdrawals {
		if f.Matches(*w) {
			res = append(res, *w)
		}
	}

	slices.SortFunc(res, func(a, b model.Withdrawal) int {
		return int(b.ID - a.ID)
	})

	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

// Ping всегда успешен.
func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}

// Close ничего не делает.
func (r *MemoryRepository) Close() error {
	return nil
}
