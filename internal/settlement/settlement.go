// Package settlement рассчитывает баланс бустера по выполненным заказам и истории выводов.
package settlement

import (
	"fmt"

	"github.com/mmeshcher/boostmarket/internal/model"
	"github.com/shopspring/decimal"
)

// Calculator считает комиссию бустера и его баланс.
// Один экземпляр используется и для сводки кошелька, и для проверки заявки на вывод.
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator создаёт калькулятор со ставкой комиссии rate из интервала (0, 1).
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if !rate.IsPositive() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("commission rate must be in (0, 1), got %s", rate)
	}
	return &Calculator{rate: rate}, nil
}

// Rate возвращает ставку комиссии.
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Commission возвращает долю бустера с одного заказа, округлённую до центов.
func (c *Calculator) Commission(price decimal.Decimal) decimal.Decimal {
	return price.Mul(c.rate).Round(2)
}

// Compute возвращает баланс: available = earned - withdrawn - pending.
func (c *Calculator) Compute(l model.Ledger) model.Settlement {
	earned := decimal.Zero
	for _, p := range l.CompletedPrices {
		earned = earned.Add(c.Commission(p))
	}

	return model.Settlement{
		Earned:    earned,
		Withdrawn: l.Approved,
		Pending:   l.Pending,
		Available: earned.Sub(l.Approved).Sub(l.Pending),
	}
}

// CanWithdraw сообщает, покрывает ли доступный баланс запрошенную сумму.
func (c *Calculator) CanWithdraw(l model.Ledger, amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(c.Compute(l).Available)
}
