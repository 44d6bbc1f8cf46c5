package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CustomerRequest identifies the complaining customer.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	ProductID   int64           `json:"productId"`
	Customer    CustomerRequest `json:"customer"`
	Description string          `json:"description"`
}

// UpdateComplaintRequest payload. Absent and empty fields are left unchanged.
type UpdateComplaintRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ComplaintResponse is the JSON view of a complaint.
type ComplaintResponse struct {
	ID            int64                  `json:"id"`
	ProductID     int64                  `json:"productId"`
	CustomerName  string                 `json:"customerName"`
	CustomerEmail string                 `json:"customerEmail"`
	Date          time.Time              `json:"date"`
	Description   string                 `json:"description"`
	Status        domain.ComplaintStatus `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ComplaintEnvelope wraps a complaint with a confirmation message.
type ComplaintEnvelope struct {
	Message   string            `json:"message"`
	Complaint ComplaintResponse `json:"complaint"`
}

// ComplaintListResponse is one page of complaints.
type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
	Total      int                 `json:"total"`
	Pages      int                 `json:"pages"`
}

// NotificationResponse is the JSON view of a notification.
type NotificationResponse struct {
	ID          int64     `json:"id"`
	ComplaintID int64     `json:"complaintId"`
	Message     string    `json:"message"`
	Date        time.Time `json:"date"`
}

// NotificationListResponse lists a complaint's notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// MessageResponse carries a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
