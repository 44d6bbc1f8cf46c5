package domain

import "time"

// Notification is an immutable record of a complaint lifecycle event.
type Notification struct {
	ID          int64
	ComplaintID int64
	Message     string
	Date        time.Time
}
