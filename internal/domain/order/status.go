package order

// Status represents the lifecycle state of an order
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPaid      Status = "PAID"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusCreated:
		return target == StatusPaid || target == StatusCancelled
	case StatusPaid:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsCancellable reports whether an order in this status may still be
// cancelled. Shipped and delivered orders never can.
func (s Status) IsCancellable() bool {
	switch s {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return false
	}
	return true
}
