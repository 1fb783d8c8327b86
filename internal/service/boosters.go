package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeshcher/boostmarket/internal/errs"
	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewBooster описывает создание профиля бустера администратором.
type NewBooster struct {
	UserID int64 `json:"user_id"`
	model.BoosterStats
}

var hundred = decimal.NewFromInt(100)

func validateStats(s model.BoosterStats) error {
	if strings.TrimSpace(s.DisplayName) == "" {
		return fmt.Errorf("%w: display name is required", errs.ErrValidation)
	}
	if s.WinRate.IsNegative() || s.WinRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: win rate must be within 0..100", errs.ErrValidation)
	}
	if s.GamesPlayed < 0 {
		return fmt.Errorf("%w: games played cannot be negative", errs.ErrValidation)
	}
	return nil
}

func requireAdmin(actor model.Actor) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: admin only", errs.ErrForbidden)
	}
	return nil
}

// CreateBooster создаёт активный профиль бустера для пользователя.
func (s *Service) CreateBooster(ctx context.Context, actor model.Actor, nb NewBooster) (*model.Booster, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if nb.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrValidation)
	}
	if err := validateStats(nb.BoosterStats); err != nil {
		return nil, err
	}

	b, err := s.repo.CreateBooster(ctx, model.Booster{
		UserID:      nb.UserID,
		DisplayName: strings.TrimSpace(nb.DisplayName),
		GameAccount: strings.TrimSpace(nb.GameAccount),
		RankLabel:   strings.TrimSpace(nb.RankLabel),
		WinRate:     nb.WinRate,
		GamesPlayed: nb.GamesPlayed,
		Active:      true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booster created", zap.Int64("boosterID", b.ID), zap.Int64("userID", b.UserID))
	return b, nil
}

// UpdateBooster обновляет статистику и игровые данные профиля.
func (s *Service) UpdateBooster(ctx context.Context, actor model.Actor, id int64, stats model.BoosterStats) (*model.Booster, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStats(stats); err != nil {
		return nil, err
	}
	stats.DisplayName = strings.TrimSpace(stats.DisplayName)
	return s.repo.UpdateBooster(ctx, id, stats)
}

// SetBoosterActive включает или выключает профиль. Выключенный бустер не может забирать заказы.
func (s *Service) SetBoosterActive(ctx context.Context, actor model.Actor, id int64, active bool) (*model.Booster, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	b, err := s.repo.SetBoosterActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booster activity changed", zap.Int64("boosterID", id), zap.Bool("active", active))
	return b, nil
}

// GetBooster возвращает профиль: администратору любой, бустеру только свой.
func (s *Service) GetBooster(ctx context.Context, actor model.Actor, id int64) (*model.Booster, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return s.repo.GetBooster(ctx, id)
	case model.RoleBooster:
		b, err := s.boosterOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		if b.ID != id {
			return nil, fmt.Errorf("%w: booster %d", errs.ErrForbidden, id)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %s cannot view boosters", errs.ErrForbidden, actor.Role)
	}
}

// MyBooster возвращает профиль вызывающего бустера.
func (s *Service) MyBooster(ctx context.Context, actor model.Actor) (*model.Booster, error) {
	return s.boosterOf(ctx, actor)
}
