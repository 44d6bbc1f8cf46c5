package worker

import (
	"github.com/spec-kit/complaint-service/internal/service"
)

// StartEventLogger subscribes the event logger to lifecycle events.
func StartEventLogger(eventLogger *service.EventLogger) {
	if eventLogger == nil {
		return
	}
	eventLogger.RegisterHandlers()
}
