// Package pricing holds the money math for orders: merchant fees,
// commissions, rep pricing and the profit breakdown. All inputs and
// outputs are cents; decimal arithmetic is used internally so rate
// multiplication never drifts.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
)

// MerchantFeeRate is charged on card-processed payments
var MerchantFeeRate = decimal.NewFromFloat(0.05)

// Referral defaults applied when a profile is first created through a link
const (
	DefaultCommissionRate = 0.075
	DefaultPriceMult      = 0.75
)

// Upline override rates. The selling rep earns their own commission_rate;
// the rep's parent and grandparent earn these flat overrides on the same
// sale total.
const (
	SecondTierOverrideRate = 0.05
	ThirdTierOverrideRate  = 0.02
)

// feeExemptMethods settle outside the card processor
var feeExemptMethods = map[string]bool{
	"credit":       true,
	"cash":         true,
	"wire":         true,
	"store_credit": true,
}

// DollarsToCents converts a dollar amount to cents without float drift
func DollarsToCents(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// FeeExempt reports whether a payment method skips the merchant fee
func FeeExempt(method string) bool {
	return feeExemptMethods[method]
}

// MerchantFee returns the processor fee in cents for the given total and
// payment method, zero for exempt methods
func MerchantFee(totalCents int64, method string) int64 {
	if FeeExempt(method) {
		return 0
	}
	return decimal.NewFromInt(totalCents).
		Mul(MerchantFeeRate).
		Round(0).
		IntPart()
}

// Commission returns rate x total in cents, rounded to the nearest cent
func Commission(totalCents int64, rate float64) int64 {
	if rate <= 0 || totalCents <= 0 {
		return 0
	}
	return decimal.NewFromInt(totalCents).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		IntPart()
}

// Profit is what remains of the total after cost of goods, shipping,
// commission and the merchant fee
func Profit(totalCents, cogsCents, shippingCents, commissionCents, feeCents int64) int64 {
	return totalCents - cogsCents - shippingCents - commissionCents - feeCents
}

// UnitPrice derives a rep's sale price for one unit.
// Percentage mode scales the base price by the rep's multiplier; cost-plus
// mode adds a fixed markup to the average lot cost.
func UnitPrice(mode enum.PricingMode, basePriceCents int64, priceMult float64, avgCostCents, costPlusMarkupCents int64) int64 {
	switch mode {
	case enum.PricingModeCostPlus:
		return avgCostCents + costPlusMarkupCents
	default:
		return decimal.NewFromInt(basePriceCents).
			Mul(decimal.NewFromFloat(priceMult)).
			Round(0).
			IntPart()
	}
}
