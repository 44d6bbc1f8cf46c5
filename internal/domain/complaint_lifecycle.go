package domain

import (
	"fmt"
	"regexp"
)

// CanceledNotificationMessage is recorded whenever a complaint is canceled.
const CanceledNotificationMessage = "Complaint canceled"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidCustomerEmail reports whether email has the local@domain.tld shape.
func ValidCustomerEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// TransitionError describes a status change refused by the update path.
type TransitionError struct {
	Current   ComplaintStatus
	Requested ComplaintStatus
}

func (e *TransitionError) Error() string {
	if e.Current.Terminal() {
		return fmt.Sprintf("Cannot update complaint with status %s", e.Current)
	}
	return fmt.Sprintf("Cannot update complaint to %s unless it is %s", e.Requested, ComplaintStatusInProgress)
}

// CheckUpdatable rejects any mutation of a complaint in a terminal status.
func CheckUpdatable(current ComplaintStatus) error {
	if current.Terminal() {
		return &TransitionError{Current: current}
	}
	return nil
}

// CheckStatusTransition decides whether the update path may move a complaint
// from current to requested. Cancel does not go through this check.
func CheckStatusTransition(current, requested ComplaintStatus) error {
	if err := CheckUpdatable(current); err != nil {
		return err
	}
	if requested == ComplaintStatusRejected && current != ComplaintStatusInProgress {
		return &TransitionError{Current: current, Requested: requested}
	}
	return nil
}

// StatusUpdatedMessage is the notification text for a status applied by update.
func StatusUpdatedMessage(status ComplaintStatus) string {
	return fmt.Sprintf("Complaint status updated to %s", status)
}
