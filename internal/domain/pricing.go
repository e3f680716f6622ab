package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice возвращается, когда сохранённая цена не является корректным числом
var ErrInvalidPrice = errors.New("domain: invalid price")

const moneyPlaces = 2

var (
	commissionRate            = decimal.RequireFromString("0.02")
	recommendedCommissionRate = decimal.RequireFromString("0.05")
	couponDiscountRate        = decimal.RequireFromString("0.15")
)

// PriceQuote результат расчёта стоимости записи
type PriceQuote struct {
	Commission decimal.Decimal
	Discount   decimal.Decimal
	FinalPrice decimal.Decimal
}

// ComputePrice рассчитывает комиссию платформы и скидку по купону
//
// Комиссия: 2% от базовой цены врача, 5% для рекомендованного врача (тарифы не суммируются).
// Купон: скидка 15% от комиссии. Все значения округляются до копеек half-up.
// Отрицательная базовая цена считается нулевой.
func ComputePrice(basePrice decimal.Decimal, isRecommended bool, couponApplied bool) PriceQuote {
	if basePrice.IsNegative() {
		basePrice = decimal.Zero
	}

	rate := commissionRate
	if isRecommended {
		rate = recommendedCommissionRate
	}

	// Round в shopspring/decimal округляет половину от нуля, для неотрицательных это half-up
	commission := basePrice.Mul(rate).Round(moneyPlaces)

	discount := decimal.Zero
	if couponApplied {
		discount = commission.Mul(couponDiscountRate).Round(moneyPlaces)
	}

	return PriceQuote{
		Commission: commission,
		Discount:   discount,
		FinalPrice: commission.Sub(discount),
	}
}

// ParseMoney разбирает сохранённую денежную строку
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// FormatMoney форматирует сумму с двумя знаками после запятой
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

// ToMinorUnits переводит сумму в минимальные единицы валюты (центы), дробная часть отбрасывается
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Shift(moneyPlaces).IntPart()
}
