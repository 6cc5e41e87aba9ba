package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
)

func TestMerchantFee(t *testing.T) {
	// 5% of $100.00
	assert.Equal(t, int64(500), MerchantFee(10000, "card"))
	// rounds to the nearest cent: 5% of $10.01 = 50.05 cents
	assert.Equal(t, int64(50), MerchantFee(1001, "card"))
	// 5% of $10.11 = 50.55 cents, rounds up
	assert.Equal(t, int64(51), MerchantFee(1011, "card"))
}

func TestMerchantFeeExemptMethods(t *testing.T) {
	for _, method := range []string{"credit", "cash", "wire", "store_credit"} {
		assert.Equal(t, int64(0), MerchantFee(10000, method), method)
	}
	assert.Equal(t, int64(500), MerchantFee(10000, "venmo"))
}

func TestCommission(t *testing.T) {
	// 7.5% of $200.00
	assert.Equal(t, int64(1500), Commission(20000, 0.075))
	assert.Equal(t, int64(0), Commission(20000, 0))
	assert.Equal(t, int64(0), Commission(0, 0.075))
	// no float drift on awkward rates: 7.5% of $19.99 = 149.925 cents
	assert.Equal(t, int64(150), Commission(1999, 0.075))
}

func TestProfit(t *testing.T) {
	// $250 total, $60 cogs, $12 shipping, $18.75 commission, $12.50 fee
	assert.Equal(t, int64(14675), Profit(25000, 6000, 1200, 1875, 1250))
	// profit can go negative
	assert.Equal(t, int64(-500), Profit(1000, 1500, 0, 0, 0))
}

func TestUnitPricePercentage(t *testing.T) {
	// $80 base at 0.75 multiplier
	assert.Equal(t, int64(6000), UnitPrice(enum.PricingModePercentage, 8000, 0.75, 0, 0))
	// $19.99 base at 0.75 = $14.9925, rounds to $14.99
	assert.Equal(t, int64(1499), UnitPrice(enum.PricingModePercentage, 1999, 0.75, 0, 0))
}

func TestUnitPriceCostPlus(t *testing.T) {
	// $22.50 average cost plus $15.00 markup
	assert.Equal(t, int64(3750), UnitPrice(enum.PricingModeCostPlus, 8000, 0.75, 2250, 1500))
}
