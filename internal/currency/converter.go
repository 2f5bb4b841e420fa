package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider отдает курс без ошибки; RateCache реализует его
type RateProvider interface {
	Rate(ctx context.Context, from, to string) float64
}

// Precision число знаков после запятой у сконвертированных сумм
const Precision = 2

type Converter struct {
	rates RateProvider
}

func NewConverter(rates RateProvider) *Converter {
	return &Converter{rates: rates}
}

// Convert переводит сумму из from в to. Одинаковые валюты возвращают
// сумму без изменений и без округления.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	rate := c.rates.Rate(ctx, from, to)
	return amount.Mul(decimal.NewFromFloat(rate)).Round(Precision)
}
