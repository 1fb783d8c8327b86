// Package pricing вычисляет стоимость заказа по конфигурации услуги.
// Все функции пакета чистые и не выполняют ввода-вывода.
package pricing

import (
	"errors"
	"fmt"

	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidSpan возвращается, если целевой ранг не строго выше исходного.
	ErrInvalidSpan = errors.New("target rank must be above source rank")
	// ErrUnknownRank возвращается для неизвестного ранга или дивизиона.
	ErrUnknownRank = errors.New("unknown rank")
	// ErrUnknownService возвращается для неизвестной категории услуги.
	ErrUnknownService = errors.New("unknown service")
	// ErrInvalidQuantity возвращается при количестве побед или часов вне допустимого диапазона.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrUnknownModifier возвращается для неизвестной или неприменимой надбавки.
	ErrUnknownModifier = errors.New("unknown modifier")
	// ErrUnknownProgress возвращается для неизвестного уровня прогресса в дивизионе.
	ErrUnknownProgress = errors.New("unknown progress tier")
)

// Modifier описывает опциональную надбавку к цене.
type Modifier string

const (
	ModifierDuo           Modifier = "duo"
	ModifierRoleSelection Modifier = "role_selection"
	ModifierPriority      Modifier = "priority"
	ModifierStream        Modifier = "stream"
)

var modifierRate = map[Modifier]decimal.Decimal{
	ModifierDuo:           decimal.RequireFromString("0.50"),
	ModifierRoleSelection: decimal.RequireFromString("0.10"),
	ModifierPriority:      decimal.RequireFromString("0.20"),
	ModifierStream:        decimal.RequireFromString("0.15"),
}

// Скидка на первый шаг в зависимости от текущего прогресса внутри дивизиона.
var progressDiscount = map[string]decimal.Decimal{
	"":      decimal.Zero,
	"0-20":  decimal.Zero,
	"21-40": decimal.RequireFromString("0.10"),
	"41-60": decimal.RequireFromString("0.20"),
	"61-80": decimal.RequireFromString("0.30"),
	"81-99": decimal.RequireFromString("0.40"),
}

const (
	md10Games   = 10
	maxWins     = 20
	maxCoachHrs = 10
)

// Quote описывает конфигурацию услуги, по которой считается цена.
//
// Для elo-boost и duo-boost используются From, To и Progress.
// Для md10 From.Tier задаёт ранг прошлого сезона, для wins текущий ранг.
// Quantity задаёт число побед (wins) или часов (coach).
type Quote struct {
	Service   model.ServiceType `json:"service"`
	From      Rank              `json:"from"`
	To        Rank              `json:"to"`
	Progress  string            `json:"progress,omitempty"`
	Modifiers []Modifier        `json:"modifiers,omitempty"`
	Quantity  int               `json:"quantity,omitempty"`
}

// Price возвращает итоговую цену услуги, округлённую до центов.
func Price(q Quote) (decimal.Decimal, error) {
	var (
		base decimal.Decimal
		err  error
	)

	mods := q.Modifiers

	switch q.Service {
	case model.ServiceEloBoost:
		base, err = SpanPrice(q.From, q.To, q.Progress)
	case model.ServiceDuoBoost:
		base, err = SpanPrice(q.From, q.To, q.Progress)
		mods = withModifier(mods, ModifierDuo)
	case model.ServiceMD10:
		var perGame decimal.Decimal
		perGame, err = lookupTier(gamePrice, q.From.Tier)
		base = perGame.Mul(decimal.NewFromInt(md10Games))
	case model.ServiceWins:
		if q.Quantity < 1 || q.Quantity > maxWins {
			return decimal.Zero, fmt.Errorf("%w: wins must be in 1..%d, got %d", ErrInvalidQuantity, maxWins, q.Quantity)
		}
		var perWin decimal.Decimal
		perWin, err = lookupTier(winPrice, q.From.Tier)
		base = perWin.Mul(decimal.NewFromInt(int64(q.Quantity)))
	case model.ServiceCoach:
		if q.Quantity < 1 || q.Quantity > maxCoachHrs {
			return decimal.Zero, fmt.Errorf("%w: hours must be in 1..%d, got %d", ErrInvalidQuantity, maxCoachHrs, q.Quantity)
		}
		for _, m := range mods {
			if m == ModifierDuo {
				return decimal.Zero, fmt.Errorf("%w: %s is not available for coaching", ErrUnknownModifier, m)
			}
		}
		base = coachHourly.Mul(decimal.NewFromInt(int64(q.Quantity)))
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownService, q.Service)
	}
	if err != nil {
		return decimal.Zero, err
	}

	surcharge, err := Surcharge(base, mods)
	if err != nil {
		return decimal.Zero, err
	}

	return base.Add(surcharge).Round(2), nil
}

// SpanPrice возвращает стоимость подъёма from → to до надбавок.
// Скидка за прогресс применяется только к первому шагу.
func SpanPrice(from, to Rank, progress string) (decimal.Decimal, error) {
	discount, ok := progressDiscount[progress]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownProgress, progress)
	}

	start, err := from.position()
	if err != nil {
		return decimal.Zero, err
	}
	end, err := to.position()
	if err != nil {
		return decimal.Zero, err
	}
	if end <= start {
		return decimal.Zero, fmt.Errorf("%w: %s -> %s", ErrInvalidSpan, from, to)
	}

	total := stepCost(start).Mul(decimal.NewFromInt(1).Sub(discount))
	for pos := start + 1; pos < end; pos++ {
		total = total.Add(stepCost(pos))
	}

	return total.Round(2), nil
}

// Surcharge возвращает сумму надбавок, каждая считается от base.
func Surcharge(base decimal.Decimal, mods []Modifier) (decimal.Decimal, error) {
	total := decimal.Zero
	seen := make(map[Modifier]bool, len(mods))
	for _, m := range mods {
		rate, ok := modifierRate[m]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownModifier, m)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		total = total.Add(base.Mul(rate))
	}
	return total, nil
}

func withModifier(mods []Modifier, m Modifier) []Modifier {
	for _, existing := range mods {
		if existing == m {
			return mods
		}
	}
	out := make([]Modifier, 0, len(mods)+1)
	out = append(out, mods...)
	return append(out, m)
}

// IsPricingError сообщает, что ошибка относится к некорректной конфигурации услуги.
func IsPricingError(err error) bool {
	return errors.Is(err, ErrInvalidSpan) ||
		errors.Is(err, ErrUnknownRank) ||
		errors.Is(err, ErrUnknownService) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrUnknownModifier) ||
		errors.Is(err, ErrUnknownProgress)
}
