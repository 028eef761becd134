package entity

type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusReady      OrderStatus = "READY"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// AllStatuses in display order.
var AllStatuses = []OrderStatus{
	StatusNew, StatusInProgress, StatusReady, StatusCompleted, StatusCancelled,
}

// ParseOrderStatus validates a raw token segment.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transitions leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label is the customer-facing wording.
func (s OrderStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In progress"
	case StatusReady:
		return "Ready for pickup"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
