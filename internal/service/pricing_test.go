package service_test

import (
	"testing"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPricing(t *testing.T) service.Pricing {
	t.Helper()
	p, err := service.NewPricing(config.Pricing{
		FreeShippingThreshold: 500,
		ShippingFee:           50,
		TaxRate:               "0.18",
	})
	require.NoError(t, err)
	return p
}

func TestPricing_Calculate(t *testing.T) {
	p := defaultPricing(t)

	testCases := []struct {
		name     string
		subtotal int64
		want     service.Totals
	}{
		{
			name:     "free shipping above threshold",
			subtotal: 2598,
			want:     service.Totals{Subtotal: 2598, Shipping: 0, Tax: 468, Total: 3066},
		},
		{
			name:     "free shipping at threshold",
			subtotal: 500,
			want:     service.Totals{Subtotal: 500, Shipping: 0, Tax: 90, Total: 590},
		},
		{
			name:     "flat fee below threshold",
			subtotal: 450,
			want:     service.Totals{Subtotal: 450, Shipping: 50, Tax: 81, Total: 581},
		},
		{
			name:     "tax rounds half up",
			subtotal: 25,
			want:     service.Totals{Subtotal: 25, Shipping: 50, Tax: 5, Total: 80},
		},
		{
			name:     "tax rounds down",
			subtotal: 2,
			want:     service.Totals{Subtotal: 2, Shipping: 50, Tax: 0, Total: 52},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Calculate(tc.subtotal))
		})
	}
}

func TestNewPricing_InvalidRate(t *testing.T) {
	_, err := service.NewPricing(config.Pricing{TaxRate: "abc"})
	assert.Error(t, err)

	_, err = service.NewPricing(config.Pricing{TaxRate: "-0.1"})
	assert.Error(t, err)
}
