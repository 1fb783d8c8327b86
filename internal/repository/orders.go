package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, client_id, booster_id, service, config, price::text, status, notes,
	proof_ref, approved_by, approved_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o          model.Order
		service    string
		status     string
		price      string
		approvedBy *int64
		approvedAt *time.Time
	)

	err := row.Scan(
		&o.ID, &o.ClientID, &o.BoosterID, &service, &o.Config, &price, &status, &o.Notes,
		&o.ProofRef, &approvedBy, &approvedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Service = model.ServiceType(service)
	o.Status = model.OrderStatus(status)
	o.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	if approvedBy != nil && approvedAt != nil {
		o.Approval = &model.Approval{By: *approvedBy, At: *approvedAt}
	}
	if o.Config == nil {
		o.Config = map[string]any{}
	}

	return &o, nil
}

// CreateOrder сохраняет новый заказ.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o model.Order) (*model.Order, error) {
	cfg := o.Config
	if cfg == nil {
		cfg = map[string]any{}
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO orders (client_id, service, config, price, status, notes)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)
		 RETURNING `+orderColumns,
		o.ClientID, string(o.Service), cfg, o.Price.String(), string(o.Status), o.Notes,
	)

	created, err := scanOrder(row)
	if err != nil {
		return nil, classify("create order", err)
	}

	return created, nil
}

// GetOrder возвращает заказ по идентификатору.
func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var o *model.Order
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		o, err = scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
		return err
	})
	if err != nil {
		return nil, classify(fmt.Sprintf("get order %d", id), err)
	}
	return o, nil
}

// ListOrders возвращает заказы по фильтру, новые первыми.
func (r *PostgresRepository) ListOrders(ctx context.Context, f model.OrderFilter) ([]model.Order, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	var orders []model.Order
	err := r.withRetry(ctx, func(ctx context.Context) error {
		orders = orders[:0]

		rows, err := r.pool.Query(ctx,
			`SELECT `+orderColumns+`
			 FROM orders
			 WHERE (cardinality($1::text[]) = 0 OR status = ANY($1))
			   AND ($2::bigint IS NULL OR client_id = $2)
			   AND ($3::bigint IS NULL OR booster_id = $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			statuses, f.ClientID, f.BoosterID, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *o)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, classify("list orders", err)
	}

	return orders, nil
}

// TransitionOrder применяет условный переход одним UPDATE.
// Если условие не выполнено, возвращает *PreconditionError с текущим состоянием заказа.
func (r *PostgresRepository) TransitionOrder(ctx context.Context, id int64, t model.OrderTransition) (*model.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, classify("begin tx", err)
	}
	defer tx.Rollback(ctx)

	keepBooster, keepProof, keepApproval := t.Keeps()

	var (
		approvedBy *int64
		approvedAt *time.Time
	)
	if t.SetApprove != nil {
		approvedBy = &t.SetApprove.By
		approvedAt = &t.SetApprove.At
	}

	from := make([]string, 0, len(t.From))
	for _, s := range t.From {
		from = append(from, string(s))
	}

	row := tx.QueryRow(ctx,
		`UPDATE orders SET
			client_id   = COALESCE($2, client_id),
			status      = COALESCE(NULLIF($3, ''), status),
			booster_id  = CASE WHEN $4 THEN COALESCE($5, booster_id) END,
			proof_ref   = CASE WHEN $6 THEN COALESCE($7, proof_ref) END,
			approved_by = CASE WHEN $8 THEN COALESCE($9, approved_by) END,
			approved_at = CASE WHEN $8 THEN COALESCE($10, approved_at) END,
			updated_at  = NOW()
		 WHERE id = $1
		   AND status = ANY($11)
		   AND ($12::bigint IS NULL OR booster_id = $12)
		   AND (NOT $13 OR booster_id IS NULL)
		   AND (NOT $14 OR client_id IS NULL)
		   AND ($15::bigint IS NULL OR client_id = $15)
		 RETURNING `+orderColumns,
		id, t.SetClient, string(t.To),
		keepBooster, t.SetBooster,
		keepProof, t.SetProof,
		keepApproval, approvedBy, approvedAt,
		from, t.Booster, t.Unassigned, t.GuestOnly, t.Owner,
	)

	updated, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		current, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
		if err != nil {
			return nil, classify(fmt.Sprintf("get order %d", id), err)
		}
		return nil, &PreconditionError{Current: *current}
	}
	if err != nil {
		return nil, classify(fmt.Sprintf("transition order %d", id), err)
	}

	if t.Message != nil {
		if err := insertMessage(ctx, tx, *t.Message); err != nil {
			return nil, classify("insert chat message", err)
		}
	}

	if t.CountCompletion && updated.BoosterID != nil {
		_, err := tx.Exec(ctx,
			`UPDATE boosters SET completed_orders = completed_orders + 1, updated_at = NOW() WHERE id = $1`,
			*updated.BoosterID,
		)
		if err != nil {
			return nil, classify("count completion", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify("commit tx", err)
	}

	return updated, nil
}

func insertMessage(ctx context.Context, tx pgx.Tx, m model.ChatMessage) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO chat_messages (id, order_id, system, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.OrderID, m.System, m.Body, m.CreatedAt,
	)
	return err
}

// ListMessages возвращает ветку чата заказа в хронологическом порядке.
func (r *PostgresRepository) ListMessages(ctx context.Context, orderID int64) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.withRetry(ctx, func(ctx context.Context) error {
		msgs = msgs[:0]

		rows, err := r.pool.Query(ctx,
			`SELECT id, order_id, system, body, created_at
			 FROM chat_messages
			 WHERE order_id = $1
			 ORDER BY created_at, id`,
			orderID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m model.ChatMessage
			if err := rows.Scan(&m.ID, &m.OrderID, &m.System, &m.Body, &m.CreatedAt); err != nil {
				return err
			}
			msgs = append(msgs, m)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, classify("list messages", err)
	}

	return msgs, nil
}
