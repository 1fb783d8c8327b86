package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

const boosterColumns = `id, user_id, display_name, game_account, rank_label, win_rate::text,
	games_played, completed_orders, active, created_at, updated_at`

func scanBooster(row pgx.Row) (*model.Booster, error) {
	var (
		b       model.Booster
		winRate string
	)

	err := row.Scan(
		&b.ID, &b.UserID, &b.DisplayName, &b.GameAccount, &b.RankLabel, &winRate,
		&b.GamesPlayed, &b.CompletedOrders, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.WinRate, err = decimal.NewFromString(winRate)
	if err != nil {
		return nil, fmt.Errorf("parse win rate %q: %w", winRate, err)
	}

	return &b, nil
}

// CreateBooster создаёт профиль бустера. Повторный профиль для того же пользователя даёт errs.ErrConflict.
func (r *PostgresRepository) CreateBooster(ctx context.Context, b model.Booster) (*model.Booster, error) {
	created, err := scanBooster(r.pool.QueryRow(ctx,
		`INSERT INTO boosters (user_id, display_name, game_account, rank_label, win_rate, games_played, active)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		 RETURNING `+boosterColumns,
		b.UserID, b.DisplayName, b.GameAccount, b.RankLabel, b.WinRate.String(), b.GamesPlayed, b.Active,
	))
	if err != nil {
		return nil, classify("create booster", err)
	}
	return created, nil
}

// GetBooster возвращает профиль бустера по идентификатору.
func (r *PostgresRepository) GetBooster(ctx context.Context, id int64) (*model.Booster, error) {
	return r.getBooster(ctx, fmt.Sprintf("get booster %d", id), `SELECT `+boosterColumns+` FROM boosters WHERE id = $1`, id)
}

// GetBoosterByUser возвращает профиль бустера по идентификатору пользователя.
func (r *PostgresRepository) GetBoosterByUser(ctx context.Context, userID int64) (*model.Booster, error) {
	return r.getBooster(ctx, fmt.Sprintf("get booster of user %d", userID), `SELECT `+boosterColumns+` FROM boosters WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) getBooster(ctx context.Context, op, query string, arg int64) (*model.Booster, error) {
	var b *model.Booster
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		b, err = scanBooster(r.pool.QueryRow(ctx, query, arg))
		return err
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return b, nil
}

// UpdateBooster обновляет редактируемые поля профиля.
func (r *PostgresRepository) UpdateBooster(ctx context.Context, id int64, s model.BoosterStats) (*model.Booster, error) {
	b, err := scanBooster(r.pool.QueryRow(ctx,
		`UPDATE boosters SET
			display_name = $2,
			game_account = $3,
			rank_label   = $4,
			win_rate     = $5::numeric,
			games_played = $6,
			updated_at   = NOW()
		 WHERE id = $1
		 RETURNING `+boosterColumns,
		id, s.DisplayName, s.GameAccount, s.RankLabel, s.WinRate.String(), s.GamesPlayed,
	))
	if err != nil {
		return nil, classify(fmt.Sprintf("update booster %d", id), err)
	}
	return b, nil
}

// SetBoosterActive включает или выключает профиль бустера.
func (r *PostgresRepository) SetBoosterActive(ctx context.Context, id int64, active bool) (*model.Booster, error) {
	b, err := scanBooster(r.pool.QueryRow(ctx,
		`UPDATE boosters SET active = $2, updated_at = NOW() WHERE id = $1 RETURNING `+boosterColumns,
		id, active,
	))
	if err != nil {
		return nil, classify(fmt.Sprintf("set booster %d active", id), err)
	}
	return b, nil
}
