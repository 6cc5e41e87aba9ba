package enum

// OrderStatus represents the lifecycle state of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid returns true if the status is a known value
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSubmitted, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving to target is a legal transition.
// draft -> submitted -> fulfilled; cancellation is allowed from any state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusSubmitted || target == OrderStatusCancelled
	case OrderStatusSubmitted:
		return target == OrderStatusFulfilled || target == OrderStatusCancelled
	case OrderStatusFulfilled:
		return target == OrderStatusCancelled
	}
	return false
}

// PaymentStatus represents how an order or movement has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid           PaymentStatus = "unpaid"
	PaymentStatusPartial          PaymentStatus = "partial"
	PaymentStatusPaid             PaymentStatus = "paid"
	PaymentStatusRefunded         PaymentStatus = "refunded"
	PaymentStatusCommissionOffset PaymentStatus = "commission_offset"
)

// Valid returns true if the status is a known value
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid,
		PaymentStatusRefunded, PaymentStatusCommissionOffset:
		return true
	}
	return false
}

// Settled reports whether the order is considered paid for fulfillment purposes
func (s PaymentStatus) Settled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusCommissionOffset
}

// ShippingStatus tracks the manual label-to-delivery progression
type ShippingStatus string

const (
	ShippingStatusPending      ShippingStatus = "pending"
	ShippingStatusLabelCreated ShippingStatus = "label_created"
	ShippingStatusPrinted      ShippingStatus = "printed"
	ShippingStatusInTransit    ShippingStatus = "in_transit"
	ShippingStatusDelivered    ShippingStatus = "delivered"
	ShippingStatusError        ShippingStatus = "error"
)

// Valid returns true if the status is a known value
func (s ShippingStatus) Valid() bool {
	switch s {
	case ShippingStatusPending, ShippingStatusLabelCreated, ShippingStatusPrinted,
		ShippingStatusInTransit, ShippingStatusDelivered, ShippingStatusError:
		return true
	}
	return false
}

// Next returns the step that follows in the linear shipping progression,
// or empty when the flow is terminal.
func (s ShippingStatus) Next() ShippingStatus {
	switch s {
	case ShippingStatusPending:
		return ShippingStatusLabelCreated
	case ShippingStatusLabelCreated:
		return ShippingStatusPrinted
	case ShippingStatusPrinted:
		return ShippingStatusInTransit
	case ShippingStatusInTransit:
		return ShippingStatusDelivered
	}
	return ""
}

// DeliveryMethod is how the client receives the order
type DeliveryMethod string

const (
	DeliveryMethodShip        DeliveryMethod = "ship"
	DeliveryMethodLocalPickup DeliveryMethod = "local_pickup"
)

// OrderSource records which channel an order came from
type OrderSource string

const (
	OrderSourceApp         OrderSource = "app"
	OrderSourceWooCommerce OrderSource = "woocommerce"
)
