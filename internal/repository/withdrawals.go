package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

const withdrawalColumns = `id, booster_id, amount::text, destination, destination_type, status,
	admin_notes, created_at, processed_at`

func scanWithdrawal(row pgx.Row) (*model.Withdrawal, error) {
	var (
		w       model.Withdrawal
		amount  string
		dstType string
		status  string
	)

	err := row.Scan(&w.ID, &w.BoosterID, &amount, &w.Destination, &dstType, &status,
		&w.AdminNotes, &w.CreatedAt, &w.ProcessedAt)
	if err != nil {
		return nil, err
	}

	w.DestinationType = model.DestinationType(dstType)
	w.Status = model.WithdrawalStatus(status)
	w.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	return &w, nil
}

// loadLedger читает цены выполненных заказов бустера и суммы его выводов.
func loadLedger(ctx context.Context, q querier, boosterID int64) (model.Ledger, error) {
	var ledger model.Ledger

	rows, err := q.Query(ctx,
		`SELECT price::text FROM orders WHERE booster_id = $1 AND status = $2`,
		boosterID, string(model.OrderStatusCompleted),
	)
	if err != nil {
		return ledger, err
	}
	defer rows.Close()

	for rows.Next() {
		var price string
		if err := rows.Scan(&price); err != nil {
			return ledger, err
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return ledger, fmt.Errorf("parse price %q: %w", price, err)
		}
		ledger.CompletedPrices = append(ledger.CompletedPrices, p)
	}
	if err := rows.Err(); err != nil {
		return ledger, err
	}

	var approved, pending string
	err = q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0)::text,
		        COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0)::text
		 FROM withdrawals
		 WHERE booster_id = $1`,
		boosterID,
	).Scan(&approved, &pending)
	if err != nil {
		return ledger, err
	}

	if ledger.Approved, err = decimal.NewFromString(approved); err != nil {
		return ledger, fmt.Errorf("parse approved sum: %w", err)
	}
	if ledger.Pending, err = decimal.NewFromString(pending); err != nil {
		return ledger, fmt.Errorf("parse pending sum: %w", err)
	}

	return ledger, nil
}

// LoadLedger возвращает исходные данные для расчёта баланса бустера.
func (r *PostgresRepository) LoadLedger(ctx context.Context, boosterID int64) (model.Ledger, error) {
	var ledger model.Ledger
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		ledger, err = loadLedger(ctx, r.pool, boosterID)
		return err
	})
	if err != nil {
		return model.Ledger{}, classify("load ledger", err)
	}
	return ledger, nil
}

// CreateWithdrawal создаёт заявку на вывод. Строка бустера блокируется на время транзакции,
// check получает баланс, прочитанный под этой блокировкой, и может отклонить заявку.
func (r *PostgresRepository) CreateWithdrawal(ctx context.Context, w model.Withdrawal, check func(model.Ledger) error) (*model.Withdrawal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, classify("begin tx", err)
	}
	defer tx.Rollback(ctx)

	var dummy int
	err = tx.QueryRow(ctx, `SELECT 1 FROM boosters WHERE id = $1 FOR UPDATE`, w.BoosterID).Scan(&dummy)
	if err != nil {
		return nil, classify(fmt.Sprintf("lock booster %d", w.BoosterID), err)
	}

	ledger, err := loadLedger(ctx, tx, w.BoosterID)
	if err != nil {
		return nil, classify("load ledger", err)
	}

	if err := check(ledger); err != nil {
		return nil, err
	}

	created, err := scanWithdrawal(tx.QueryRow(ctx,
		`INSERT INTO withdrawals (booster_id, amount, destination, destination_type, status)
		 VALUES ($1, $2::numeric, $3, $4, $5)
		 RETURNING `+withdrawalColumns,
		w.BoosterID, w.Amount.String(), w.Destination, string(w.DestinationType), string(model.WithdrawalPending),
	))
	if err != nil {
		return nil, classify("insert withdrawal", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify("commit tx", err)
	}

	return created, nil
}

// DecideWithdrawal переводит заявку из pending в approved или rejected.
func (r *PostgresRepository) DecideWithdrawal(ctx context.Context, id int64, status model.WithdrawalStatus, notes string, at time.Time) (*model.Withdrawal, error) {
	w, err := scanWithdrawal(r.pool.QueryRow(ctx,
		`UPDATE withdrawals SET status = $2, admin_notes = $3, processed_at = $4
		 WHERE id = $1 AND status = $5
		 RETURNING `+withdrawalColumns,
		id, string(status), notes, at, string(model.WithdrawalPending),
	))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, classify(fmt.Sprintf("decide withdrawal %d", id), err)
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM withdrawals WHERE id = $1`, id).Scan(&current)
	if err != nil {
		return nil, classify(fmt.Sprintf("get withdrawal %d", id), err)
	}

	return nil, fmt.Errorf("%w: withdrawal %d is %s", errs.ErrInvalidTransition, id, current)
}

// ListWithdrawals возвращает заявки по фильтру, новые первыми.
func (r *PostgresRepository) ListWithdrawals(ctx context.Context, f model.WithdrawalFilter) ([]model.Withdrawal, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	var res []model.Withdrawal
	err := r.withRetry(ctx, func(ctx context.Context) error {
		res = res[:0]

		rows, err := r.pool.Query(ctx,
			`SELECT `+withdrawalColumns+`
			 FROM withdrawals
			 WHERE ($1::bigint IS NULL OR booster_id = $1)
			   AND ($2 = '' OR status = $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			f.BoosterID, string(f.Status), limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			w, err := scanWithdrawal(rows)
			if err != nil {
				return err
			}
			res = append(res, *w)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, classify("list withdrawals", err)
	}

	return res, nil
}
