package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses an order moves through after placement.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses tracked independently of the order status.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"userId"`
	User            *User           `json:"user,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	OrderStatus     string          `gorm:"default:pending" json:"orderStatus"`
	PaymentStatus   string          `gorm:"default:pending" json:"paymentStatus"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `gorm:"default:cod" json:"paymentMethod"`
}

// OrderItem captures the unit price at order time so later product price
// changes never alter a placed order's total.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;index" json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:uuid;index" json:"productId"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

// ValidOrderStatus reports whether s is one of the order status enum values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the payment status enum values.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}
