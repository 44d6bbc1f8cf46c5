package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	msgMissingFields      = "Missing required fields"
	msgInvalidEmail       = "Invalid email format"
	msgInvalidStatus      = "Invalid status value"
	complaintResourceName = "Complaint"
)

// Transactor runs fn atomically. Repositories join the transaction through ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ComplaintService owns the complaint lifecycle: submission, status changes
// and the notifications each change produces.
type ComplaintService struct {
	complaints    repository.ComplaintRepository
	notifications repository.NotificationRepository
	tx            Transactor
	dispatcher    events.Dispatcher
	validate      *validator.Validate
	logger        *zap.Logger
	pagination    config.PaginationConfig
	now           func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo    repository.ComplaintRepository
	NotificationRepo repository.NotificationRepository
	Tx               Transactor
	Dispatcher       events.Dispatcher
	Validator        *validator.Validate
	Logger           *zap.Logger
	Pagination       config.PaginationConfig
}

// SubmitComplaintInput describes complaint creation payload.
type SubmitComplaintInput struct {
	ProductID     int64  `validate:"required"`
	CustomerName  string `validate:"required"`
	CustomerEmail string `validate:"required"`
	Description   string `validate:"required"`
}

// ComplaintPatch holds the optional fields of an update. Empty values are ignored.
type ComplaintPatch struct {
	Description *string
	Status      *string
}

// ComplaintQuery describes list filters. Page and PageSize below 1 use defaults.
type ComplaintQuery struct {
	ProductID    *int64
	CustomerName *string
	Status       *domain.ComplaintStatus
	Page         int
	PageSize     int
}

// ComplaintPage is one page of a filtered listing.
type ComplaintPage struct {
	Complaints []domain.Complaint
	Total      int
	Pages      int
	Page       int
	PageSize   int
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	validate := deps.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pagination := deps.Pagination
	if pagination.DefaultPageSize <= 0 {
		pagination.DefaultPageSize = 10
	}
	return &ComplaintService{
		complaints:    deps.ComplaintRepo,
		notifications: deps.NotificationRepo,
		tx:            deps.Tx,
		dispatcher:    deps.Dispatcher,
		validate:      validate,
		logger:        logger,
		pagination:    pagination,
		now:           time.Now,
	}
}

// Submit creates an Open complaint.
func (s *ComplaintService) Submit(ctx context.Context, actorID int64, input SubmitComplaintInput) (*domain.Complaint, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.NewValidationError(msgMissingFields, nil)
	}
	if !domain.ValidCustomerEmail(input.CustomerEmail) {
		return nil, apperrors.NewValidationError(msgInvalidEmail, nil)
	}

	complaint := &domain.Complaint{
		ProductID:     input.ProductID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Date:          s.now(),
		Description:   input.Description,
		Status:        domain.ComplaintStatusOpen,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		ActorID:     actorID,
		Payload:     events.ComplaintSubmittedPayload{ProductID: complaint.ProductID},
	})
	return complaint, nil
}

// Get returns a complaint by id.
func (s *ComplaintService) Get(ctx context.Context, id int64) (*domain.Complaint, error) {
	return s.load(ctx, id)
}

// List returns one page of complaints matching the query.
func (s *ComplaintService) List(ctx context.Context, query ComplaintQuery) (*ComplaintPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = s.pagination.DefaultPageSize
	}
	if s.pagination.MaxPageSize > 0 && pageSize > s.pagination.MaxPageSize {
		pageSize = s.pagination.MaxPageSize
	}

	// An offset past MaxInt lies beyond every row; the count still runs.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/pageSize {
		offset = (page - 1) * pageSize
	}

	complaints, total, err := s.complaints.List(ctx, repository.ComplaintFilter{
		ProductID:    query.ProductID,
		CustomerName: query.CustomerName,
		Status:       query.Status,
		Limit:        pageSize,
		Offset:       offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	return &ComplaintPage{
		Complaints: complaints,
		Total:      total,
		Pages:      pageCount(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Update applies a description and/or status change. Terminal complaints
// accept neither. Every applied status writes one notification in the same
// transaction as the complaint.
func (s *ComplaintService) Update(ctx context.Context, actorID, id int64, patch ComplaintPatch) (*domain.Complaint, error) {
	var (
		updated   *domain.Complaint
		oldStatus domain.ComplaintStatus
		applied   *domain.Notification
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		complaint, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		oldStatus = complaint.Status

		if err := domain.CheckUpdatable(complaint.Status); err != nil {
			return apperrors.NewInvalidTransition(err)
		}

		var requested domain.ComplaintStatus
		if patch.Status != nil && *patch.Status != "" {
			requested = domain.ComplaintStatus(*patch.Status)
			if !requested.Valid() {
				return apperrors.NewValidationError(msgInvalidStatus, map[string]any{"allowed": domain.ComplaintStatuses})
			}
		}

		if patch.Description != nil && *patch.Description != "" {
			complaint.Description = *patch.Description
		}

		if requested != "" {
			if err := domain.CheckStatusTransition(complaint.Status, requested); err != nil {
				return apperrors.NewInvalidTransition(err)
			}
			complaint.Status = requested
			notification := &domain.Notification{
				ComplaintID: complaint.ID,
				Message:     domain.StatusUpdatedMessage(requested),
				Date:        s.now(),
			}
			if err := s.notifications.Create(ctx, notification); err != nil {
				return fmt.Errorf("create notification: %w", err)
			}
			applied = notification
		}

		if err := s.complaints.Update(ctx, complaint); err != nil {
			return fmt.Errorf("update complaint: %w", err)
		}
		updated = complaint
		return nil
	})
	if err != nil {
		return nil, err
	}

	if applied != nil {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: updated.ID,
			ActorID:     actorID,
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: updated.Status,
				Message:   applied.Message,
			},
		})
	}
	return updated, nil
}

// Cancel moves a complaint to Canceled from any status, including terminal
// ones, and records a notification.
func (s *ComplaintService) Cancel(ctx context.Context, actorID, id int64) error {
	var oldStatus domain.ComplaintStatus

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		complaint, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		oldStatus = complaint.Status

		complaint.Status = domain.ComplaintStatusCanceled
		if err := s.complaints.Update(ctx, complaint); err != nil {
			return fmt.Errorf("update complaint: %w", err)
		}

		notification := &domain.Notification{
			ComplaintID: complaint.ID,
			Message:     domain.CanceledNotificationMessage,
			Date:        s.now(),
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCanceled,
		ComplaintID: id,
		ActorID:     actorID,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: domain.ComplaintStatusCanceled,
			Message:   domain.CanceledNotificationMessage,
		},
	})
	return nil
}

// pageCount is ceil(total/pageSize) without overflowing on huge page sizes.
func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

func (s *ComplaintService) load(ctx context.Context, id int64) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(complaintResourceName, nil)
		}
		return nil, fmt.Errorf("load complaint: %w", err)
	}
	return complaint, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("complaint_id", event.ComplaintID),
			zap.Error(err))
	}
}
