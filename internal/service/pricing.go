package service

import (
	"fmt"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal int64
	Shipping int64
	Tax      int64
	Total    int64
}

// Pricing derives shipping, tax and total from a subtotal. Shipping is free
// from the threshold upwards; tax is rounded half away from zero.
type Pricing struct {
	freeShippingThreshold int64
	shippingFee           int64
	taxRate               decimal.Decimal
}

func NewPricing(cfg config.Pricing) (Pricing, error) {
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("invalid tax rate %q: %w", cfg.TaxRate, err)
	}
	if rate.IsNegative() {
		return Pricing{}, fmt.Errorf("invalid tax rate %q: negative", cfg.TaxRate)
	}
	return Pricing{
		freeShippingThreshold: cfg.FreeShippingThreshold,
		shippingFee:           cfg.ShippingFee,
		taxRate:               rate,
	}, nil
}

func (p Pricing) Calculate(subtotal int64) Totals {
	shipping := p.shippingFee
	if subtotal >= p.freeShippingThreshold {
		shipping = 0
	}

	tax := decimal.NewFromInt(subtotal).Mul(p.taxRate).Round(0).IntPart()

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
