package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/persistence"
)

// NotificationRepository stores the append-only complaint event log.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByComplaint(ctx context.Context, complaintID int64) ([]domain.Notification, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (complaint_id, message, date)
        VALUES ($1,$2,$3)
        RETURNING id`
	return persistence.Conn(ctx, r.pool).QueryRow(ctx, query,
		notification.ComplaintID,
		notification.Message,
		notification.Date,
	).Scan(&notification.ID)
}

func (r *notificationRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]domain.Notification, error) {
	const query = `
        SELECT id, complaint_id, message, date
        FROM notifications WHERE complaint_id=$1 ORDER BY id ASC`
	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.ComplaintID, &n.Message, &n.Date); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
