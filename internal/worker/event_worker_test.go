package worker

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
)

func TestStartEventLoggerCountsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	StartEventLogger(service.NewEventLogger(dispatcher, zap.NewNop(), metrics))

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: 1,
		Payload:     events.ComplaintSubmittedPayload{ProductID: 1},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: 1,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: domain.ComplaintStatusOpen,
			NewStatus: domain.ComplaintStatusInProgress,
		},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventComplaintCanceled,
		ComplaintID: 1,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: domain.ComplaintStatusInProgress,
			NewStatus: domain.ComplaintStatusCanceled,
		},
	}))

	transitions, err := testutil.GatherAndCount(metrics.Registry(), "complaint_status_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, transitions)

	submissions, err := testutil.GatherAndCount(metrics.Registry(), "complaints_submitted_total")
	require.NoError(t, err)
	assert.Equal(t, 1, submissions)
}

func TestStartEventLoggerNil(t *testing.T) {
	assert.NotPanics(t, func() { StartEventLogger(nil) })
}
