package booking

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether the booking still occupies its time slot.
// Active bookings are the ones the conflict checker counts.
func (s Status) IsActive() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

type TeachingMethod string

const (
	MethodOnline  TeachingMethod = "online"
	MethodOffline TeachingMethod = "offline"
)

func (m TeachingMethod) IsValid() bool {
	return m == MethodOnline || m == MethodOffline
}

func (m TeachingMethod) String() string {
	return string(m)
}
