package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ApplyDeductions: базовая цена минус сбор за комплектацию, затем поправки
// по каждому ключевому слову, найденному в примечании. Поправки суммируются,
// результат не ограничивается снизу.
func (e *Engine) ApplyDeductions(base decimal.Decimal, remarks string) decimal.Decimal {
	out := base.Sub(decimal.NewFromInt(e.rules.HandlingFee))
	for _, d := range e.rules.Deductions {
		if d.Keyword != "" && strings.Contains(remarks, d.Keyword) {
			out = out.Add(decimal.NewFromInt(d.Amount))
		}
	}
	return out
}
