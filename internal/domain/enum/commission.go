package enum

// CommissionType distinguishes direct commissions from upline overrides
type CommissionType string

const (
	CommissionTypeDirect             CommissionType = "direct"
	CommissionTypeSecondTierOverride CommissionType = "second_tier_override"
	CommissionTypeThirdTierOverride  CommissionType = "third_tier_override"
)

// CommissionStatus is the payout state of a commission record
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
	CommissionStatusVoided  CommissionStatus = "voided"
)
