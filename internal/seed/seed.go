// Package seed loads demo accounts and complaints into an empty database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// Usernames are the seeded accounts.
var Usernames = []string{"user1", "user2", "user3"}

// Complaints are the seeded complaints. Statuses are stored as given.
var Complaints = []domain.Complaint{
	{ProductID: 1, CustomerName: "John Doe", CustomerEmail: "john.doe@example.com", Description: "Product stopped working after one week.", Status: domain.ComplaintStatusOpen},
	{ProductID: 2, CustomerName: "Jane Smith", CustomerEmail: "jane.smith@example.com", Description: "Received the wrong product.", Status: domain.ComplaintStatusInProgress},
	{ProductID: 1, CustomerName: "Alice Johnson", CustomerEmail: "alice.johnson@example.com", Description: "Product arrived damaged.", Status: domain.ComplaintStatusOpen},
	{ProductID: 3, CustomerName: "Bob Brown", CustomerEmail: "bob.brown@example.com", Description: "Product does not match the description.", Status: domain.ComplaintStatusRejected},
}

// Result summarizes what a run inserted.
type Result struct {
	Users      int
	Complaints int
}

// Run creates missing accounts and, when the complaint table is empty, the
// sample complaints. Running it twice inserts nothing the second time.
func Run(ctx context.Context, auth *service.AuthService, complaints repository.ComplaintRepository, logger *zap.Logger) (Result, error) {
	var result Result

	for _, username := range Usernames {
		_, err := auth.Register(ctx, service.RegisterInput{Username: username, Password: DefaultPassword})
		if err != nil {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == "CONFLICT" {
				logger.Info("seed user exists", zap.String("username", username))
				continue
			}
			return result, fmt.Errorf("seed user %s: %w", username, err)
		}
		result.Users++
	}

	_, total, err := complaints.List(ctx, repository.ComplaintFilter{Limit: 1})
	if err != nil {
		return result, fmt.Errorf("count complaints: %w", err)
	}
	if total > 0 {
		logger.Info("complaints present; skipping sample complaints", zap.Int("total", total))
		return result, nil
	}

	now := time.Now()
	for _, sample := range Complaints {
		complaint := sample
		complaint.Date = now
		if err := complaints.Create(ctx, &complaint); err != nil {
			return result, fmt.Errorf("seed complaint for %s: %w", complaint.CustomerName, err)
		}
		result.Complaints++
	}

	logger.Info("sample data created", zap.Int("users", result.Users), zap.Int("complaints", result.Complaints))
	return result, nil
}
