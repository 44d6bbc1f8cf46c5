package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "Open"
	ComplaintStatusInProgress ComplaintStatus = "InProgress"
	ComplaintStatusRejected   ComplaintStatus = "Rejected"
	ComplaintStatusAccepted   ComplaintStatus = "Accepted"
	ComplaintStatusCanceled   ComplaintStatus = "Canceled"
)

// ComplaintStatuses lists every persisted status value.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusOpen,
	ComplaintStatusInProgress,
	ComplaintStatusRejected,
	ComplaintStatusAccepted,
	ComplaintStatusCanceled,
}

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	for _, known := range ComplaintStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the update path refuses further changes.
func (s ComplaintStatus) Terminal() bool {
	switch s {
	case ComplaintStatusRejected, ComplaintStatusAccepted, ComplaintStatusCanceled:
		return true
	default:
		return false
	}
}

// Complaint is a customer-submitted issue about a product.
type Complaint struct {
	ID            int64
	ProductID     int64
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	Description   string
	Status        ComplaintStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
