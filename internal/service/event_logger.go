package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// EventLogger records complaint lifecycle events in the log and metrics.
type EventLogger struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewEventLogger creates the subscriber.
func NewEventLogger(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *EventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLogger{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (l *EventLogger) RegisterHandlers() {
	if l.dispatcher == nil {
		return
	}
	l.dispatcher.Subscribe(events.EventComplaintSubmitted, l.handleSubmitted)
	l.dispatcher.Subscribe(events.EventComplaintStatusChanged, l.handleStatusChanged)
	l.dispatcher.Subscribe(events.EventComplaintCanceled, l.handleStatusChanged)
}

func (l *EventLogger) handleSubmitted(_ context.Context, event events.Event) error {
	l.logger.Info("ComplaintSubmitted",
		zap.String("event_id", event.ID),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	l.metrics.RecordSubmission()
	return nil
}

func (l *EventLogger) handleStatusChanged(_ context.Context, event events.Event) error {
	l.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.ComplaintStatusChangedPayload); ok {
		l.metrics.RecordTransition(string(payload.OldStatus), string(payload.NewStatus))
	}
	return nil
}
