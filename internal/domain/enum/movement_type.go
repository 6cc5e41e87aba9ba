package enum

// MovementType classifies a change in inventory disposition
type MovementType string

const (
	MovementTypeSale        MovementType = "sale"
	MovementTypeGiveaway    MovementType = "giveaway"
	MovementTypeInternalUse MovementType = "internal_use"
	MovementTypeLoss        MovementType = "loss"
	MovementTypeReturn      MovementType = "return"
)

// Valid returns true if the type is a known value
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeSale, MovementTypeGiveaway, MovementTypeInternalUse,
		MovementTypeLoss, MovementTypeReturn:
		return true
	}
	return false
}

// BottleOutcome returns the bottle status a movement of this type leaves
// its bottles in. A return puts bottles back in stock.
func (t MovementType) BottleOutcome() BottleStatus {
	switch t {
	case MovementTypeSale:
		return BottleStatusSold
	case MovementTypeGiveaway:
		return BottleStatusGivenAway
	case MovementTypeInternalUse:
		return BottleStatusInternalUse
	case MovementTypeLoss:
		return BottleStatusLost
	case MovementTypeReturn:
		return BottleStatusInStock
	}
	return BottleStatusInStock
}

// TakesStock reports whether a movement of this type removes bottles from
// stock. Returns are the only type that puts bottles back.
func (t MovementType) TakesStock() bool {
	return t != MovementTypeReturn
}

// BottleStatus is the disposition of an individual bottle
type BottleStatus string

const (
	BottleStatusInStock     BottleStatus = "in_stock"
	BottleStatusSold        BottleStatus = "sold"
	BottleStatusGivenAway   BottleStatus = "given_away"
	BottleStatusInternalUse BottleStatus = "internal_use"
	BottleStatusLost        BottleStatus = "lost"
	BottleStatusReturned    BottleStatus = "returned"
)
