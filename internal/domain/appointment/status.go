package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
	StatusPending   Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCanceled, StatusPending:
		return true
	}
	return false
}

// Active reports whether the slot is still taken on the agenda.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusPending
}

// InitialStatus é o status de um agendamento recém-criado sem status explícito
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded:
		return true
	}
	return false
}
