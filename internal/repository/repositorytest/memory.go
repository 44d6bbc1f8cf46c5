// Package repositorytest provides in-memory repositories for tests.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	Err    error
}

// NewUsers returns an empty user store.
func NewUsers() *Users {
	return &Users{byID: map[int64]domain.User{}}
}

func (u *Users) Create(_ context.Context, user *domain.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, existing := range u.byID {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	u.nextID++
	now := time.Now()
	user.ID, user.CreatedAt, user.UpdatedAt = u.nextID, now, now
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (u *Users) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Complaints is an in-memory repository.ComplaintRepository.
type Complaints struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]domain.Complaint
	UpdateErr error
}

// NewComplaints returns an empty complaint store.
func NewComplaints() *Complaints {
	return &Complaints{byID: map[int64]domain.Complaint{}}
}

func (c *Complaints) Create(_ context.Context, complaint *domain.Complaint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	now := time.Now()
	complaint.ID, complaint.CreatedAt, complaint.UpdatedAt = c.nextID, now, now
	c.byID[complaint.ID] = *complaint
	return nil
}

func (c *Complaints) Update(_ context.Context, complaint *domain.Complaint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.UpdateErr != nil {
		return c.UpdateErr
	}
	stored, ok := c.byID[complaint.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Description = complaint.Description
	stored.Status = complaint.Status
	stored.UpdatedAt = time.Now()
	complaint.UpdatedAt = stored.UpdatedAt
	c.byID[complaint.ID] = stored
	return nil
}

func (c *Complaints) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	complaint, ok := c.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &complaint, nil
}

func (c *Complaints) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := []domain.Complaint{}
	for _, complaint := range c.byID {
		if filter.ProductID != nil && complaint.ProductID != *filter.ProductID {
			continue
		}
		if filter.CustomerName != nil && !strings.Contains(strings.ToLower(complaint.CustomerName), strings.ToLower(*filter.CustomerName)) {
			continue
		}
		if filter.Status != nil && complaint.Status != *filter.Status {
			continue
		}
		matched = append(matched, complaint)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := total
	if filter.Limit < total-start {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

// Notifications is an in-memory repository.NotificationRepository.
type Notifications struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Notification
	Err    error
}

// NewNotifications returns an empty notification log.
func NewNotifications() *Notifications {
	return &Notifications{}
}

func (n *Notifications) Create(_ context.Context, notification *domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.nextID++
	notification.ID = n.nextID
	n.rows = append(n.rows, *notification)
	return nil
}

func (n *Notifications) ListByComplaint(_ context.Context, complaintID int64) ([]domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := []domain.Notification{}
	for _, row := range n.rows {
		if row.ComplaintID == complaintID {
			result = append(result, row)
		}
	}
	return result, nil
}

// Tx runs functions directly, counting how often a transaction was requested.
type Tx struct {
	mu    sync.Mutex
	Calls int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}
