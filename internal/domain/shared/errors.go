package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrStorageUnavailable  = NewDomainError("STORAGE_UNAVAILABLE", "Storage is temporarily unavailable, try again")
)

// Catalog errors
var (
	ErrProductNotFound = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrProductInactive = NewDomainError("PRODUCT_INACTIVE", "Product is not available for sale")
)

// Stock errors
var (
	ErrInsufficientGlobalStock   = NewDomainError("INSUFFICIENT_GLOBAL_STOCK", "Insufficient unallocated stock in the global pool")
	ErrInsufficientLocationStock = NewDomainError("INSUFFICIENT_LOCATION_STOCK", "Insufficient stock at the source location")
	ErrInsufficientStock         = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrSameLocation              = NewDomainError("SAME_LOCATION", "Source and destination locations must differ")
)

// Fulfillment errors
var (
	ErrNoLocationHasSufficientStock = NewDomainError("NO_LOCATION_HAS_SUFFICIENT_STOCK", "No sales location can fulfill every item in the order")
	ErrNoActiveDeliveryAddress      = NewDomainError("NO_ACTIVE_DELIVERY_ADDRESS", "No active delivery address is configured")
)

// Order errors
var (
	ErrOrderNotFound     = NewDomainError("ORDER_NOT_FOUND", "Order not found")
	ErrInvalidTransition = NewDomainError("INVALID_TRANSITION", "Order status transition is not allowed")
)

// Location errors
var (
	ErrDuplicateCode      = NewDomainError("DUPLICATE_CODE", "A record with this code already exists")
	ErrHasDependentOrders = NewDomainError("HAS_DEPENDENT_ORDERS", "Record is referenced by existing orders")
)
