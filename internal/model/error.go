package model

// ErrorResponse represents a standardised error payload from the backend.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for storefront failures
const (
	ErrCodeOutOfStock           = "OUT_OF_STOCK"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeCompareLimitExceeded = "COMPARE_LIMIT_EXCEEDED"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeInvalidCoupon        = "INVALID_COUPON"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodePayment              = "PAYMENT_ERROR"
	ErrCodeNetwork              = "NETWORK_ERROR"
)

// DomainError is a business-rule failure with a stable code the UI layer can
// switch on when choosing how to surface it.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOutOfStock           = NewDomainError(ErrCodeOutOfStock, "Not enough stock available")
	ErrInsufficientStock    = NewDomainError(ErrCodeInsufficientStock, "Requested quantity exceeds available stock")
	ErrCompareLimitExceeded = NewDomainError(ErrCodeCompareLimitExceeded, "You can only compare up to 3 products")
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "Your cart is empty")
	ErrInvalidCoupon        = NewDomainError(ErrCodeInvalidCoupon, "Invalid coupon code")
	ErrUnauthorised         = NewDomainError(ErrCodeUnauthorised, "Please login to continue")
)
