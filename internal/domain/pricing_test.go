package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name           string
		basePrice      string
		recommended    bool
		coupon         bool
		wantCommission string
		wantDiscount   string
		wantFinal      string
	}{
		{
			name:           "regular doctor with coupon",
			basePrice:      "100.00",
			coupon:         true,
			wantCommission: "2.00",
			wantDiscount:   "0.30",
			wantFinal:      "1.70",
		},
		{
			name:           "recommended doctor without coupon",
			basePrice:      "200.00",
			recommended:    true,
			wantCommission: "10.00",
			wantDiscount:   "0.00",
			wantFinal:      "10.00",
		},
		{
			name:           "commission rounds half up",
			basePrice:      "0.25",
			wantCommission: "0.01",
			wantDiscount:   "0.00",
			wantFinal:      "0.01",
		},
		{
			name:           "discount rounds half up",
			basePrice:      "150.00",
			coupon:         true,
			wantCommission: "3.00",
			wantDiscount:   "0.45",
			wantFinal:      "2.55",
		},
		{
			name:           "discount of small commission",
			basePrice:      "50.00",
			recommended:    true,
			coupon:         true,
			wantCommission: "2.50",
			wantDiscount:   "0.38",
			wantFinal:      "2.12",
		},
		{
			name:           "zero base price",
			basePrice:      "0",
			coupon:         true,
			wantCommission: "0.00",
			wantDiscount:   "0.00",
			wantFinal:      "0.00",
		},
		{
			name:           "negative base price treated as zero",
			basePrice:      "-10.00",
			wantCommission: "0.00",
			wantDiscount:   "0.00",
			wantFinal:      "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputePrice(dec(tt.basePrice), tt.recommended, tt.coupon)

			assert.Equal(t, tt.wantCommission, FormatMoney(q.Commission))
			assert.Equal(t, tt.wantDiscount, FormatMoney(q.Discount))
			assert.Equal(t, tt.wantFinal, FormatMoney(q.FinalPrice))
		})
	}
}

func TestComputePrice_Properties(t *testing.T) {
	bases := []string{"0", "0.01", "0.49", "1.00", "33.33", "99.99", "100.00", "1234.56", "99999.99"}

	for _, b := range bases {
		for _, recommended := range []bool{false, true} {
			base := dec(b)
			rate := dec("0.02")
			if recommended {
				rate = dec("0.05")
			}

			noCoupon := ComputePrice(base, recommended, false)
			assert.True(t, base.Mul(rate).Round(2).Equal(noCoupon.Commission), "base=%s", b)
			assert.True(t, noCoupon.Discount.IsZero())
			assert.True(t, noCoupon.FinalPrice.Equal(noCoupon.Commission))

			withCoupon := ComputePrice(base, recommended, true)
			assert.True(t, withCoupon.Commission.Equal(noCoupon.Commission))
			assert.True(t, noCoupon.Commission.Mul(dec("0.15")).Round(2).Equal(withCoupon.Discount), "base=%s", b)
			assert.True(t, withCoupon.FinalPrice.Equal(withCoupon.Commission.Sub(withCoupon.Discount)))
			assert.False(t, withCoupon.FinalPrice.IsNegative())
		}
	}
}

func TestComputePrice_Repeatable(t *testing.T) {
	base := dec("123.45")
	first := ComputePrice(base, true, true)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputePrice(base, true, true))
	}
	assert.Equal(t, "123.45", base.String())
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(170), ToMinorUnits(dec("1.70")))
	assert.Equal(t, int64(1000), ToMinorUnits(dec("10.00")))
	assert.Equal(t, int64(49), ToMinorUnits(dec("0.49")))
	assert.Equal(t, int64(0), ToMinorUnits(dec("0")))
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("1.70")
	require.NoError(t, err)
	assert.Equal(t, "1.70", FormatMoney(d))

	_, err = ParseMoney("abc")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ParseMoney("")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ParseMoney("-1.00")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestPendingBooking_ApplyQuote(t *testing.T) {
	b := &PendingBooking{State: PendingDraft}
	b.ApplyQuote(ComputePrice(dec("100.00"), false, true))

	assert.Equal(t, "1.70", b.Price)
	assert.Equal(t, "0.30", b.Discount)
	assert.Equal(t, PendingPriceComputed, b.State)

	price, err := b.FinalPrice()
	require.NoError(t, err)
	assert.Equal(t, int64(170), ToMinorUnits(price))
}

func TestPendingBooking_ApplyQuote_RepricingResetsCheckout(t *testing.T) {
	b := &PendingBooking{
		Price:             "2.00",
		Discount:          "0.00",
		State:             PendingSubmitted,
		CheckoutSessionID: "cs_1",
	}
	require.True(t, b.Submitted())

	b.ApplyQuote(ComputePrice(dec("100.00"), false, false))
	assert.Equal(t, PendingSubmitted, b.State)
	assert.Equal(t, "cs_1", b.CheckoutSessionID)

	b.ApplyQuote(ComputePrice(dec("100.00"), false, true))
	assert.Equal(t, PendingPriceComputed, b.State)
	assert.Empty(t, b.CheckoutSessionID)
	assert.False(t, b.Submitted())
}
