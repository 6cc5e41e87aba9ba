package enum

// ContactType classifies CRM contacts
type ContactType string

const (
	ContactTypeCustomer ContactType = "customer"
	ContactTypePartner  ContactType = "partner"
	ContactTypeInternal ContactType = "internal"
)

// Valid returns true if the type is a known value
func (t ContactType) Valid() bool {
	switch t {
	case ContactTypeCustomer, ContactTypePartner, ContactTypeInternal:
		return true
	}
	return false
}

// AppRole is the application-level role assigned to a profile within an org
type AppRole string

const (
	AppRoleAdmin    AppRole = "admin"
	AppRoleSalesRep AppRole = "sales_rep"
	AppRoleClient   AppRole = "client"
)

// PartnerTier is the commission tier for partner profiles
type PartnerTier string

const (
	PartnerTierAssociate PartnerTier = "associate"
	PartnerTierPartner   PartnerTier = "partner"
	PartnerTierSenior    PartnerTier = "senior"
)

// PricingMode selects how a rep's sale price is derived from base price
type PricingMode string

const (
	PricingModePercentage PricingMode = "percentage"
	PricingModeCostPlus   PricingMode = "cost_plus"
)
