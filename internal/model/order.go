package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod selects one of the two terminal checkout flows.
type PaymentMethod string

const (
	// PaymentStripe redirects the customer to the hosted payment page.
	PaymentStripe PaymentMethod = "stripe"
	// PaymentCashOnDelivery posts the order directly with deferred payment.
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
)

// BillingDetails holds the customer-entered billing fields. Validation rules
// live on the struct so guest checkout and the saved-address sub-form share
// them.
type BillingDetails struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	Country      string `json:"country" validate:"required"`
	City         string `json:"city" validate:"required"`
	Address      string `json:"address" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Note         string `json:"note,omitempty"`
}

// OrderItem is a single line of an order draft as the backend expects it.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image,omitempty"`
}

// OrderDraft is the payload posted to both the checkout-session and the
// cash-on-delivery order endpoints. Reference is client-generated so a
// retried submission can be deduplicated server-side.
type OrderDraft struct {
	Reference     uuid.UUID      `json:"reference"`
	CustomerInfo  BillingDetails `json:"customerInfo"`
	Items         []OrderItem    `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Discount      float64        `json:"discount"`
	Shipping      float64        `json:"shipping"`
	Total         float64        `json:"total"`
	Currency      string         `json:"currency"`
	PaymentMethod PaymentMethod  `json:"paymentMethod,omitempty"`
	CouponCode    string         `json:"couponCode,omitempty"`
}

// Order is the backend's view of a placed order.
type Order struct {
	ID            string        `json:"_id"`
	OrderNumber   string        `json:"orderNumber"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"paymentStatus,omitempty"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Shipping      float64       `json:"shipping"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
