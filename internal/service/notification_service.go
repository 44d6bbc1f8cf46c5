package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// NotificationService exposes the notification log of a complaint.
type NotificationService struct {
	complaints    repository.ComplaintRepository
	notifications repository.NotificationRepository
}

// NewNotificationService creates the service.
func NewNotificationService(complaints repository.ComplaintRepository, notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		complaints:    complaints,
		notifications: notifications,
	}
}

// ListForComplaint returns notifications in creation order.
func (n *NotificationService) ListForComplaint(ctx context.Context, complaintID int64) ([]domain.Notification, error) {
	if _, err := n.complaints.GetByID(ctx, complaintID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(complaintResourceName, nil)
		}
		return nil, fmt.Errorf("load complaint: %w", err)
	}
	notifications, err := n.notifications.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
