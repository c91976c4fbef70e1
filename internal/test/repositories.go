package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs the stub with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers an account unless one already exists for the email.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string, admin bool) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	email = strings.ToLower(email)
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, Admin: admin}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches an account by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an account by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour. Without overrides
// it keeps orders in an insertion-ordered slice.
type OrderRepositoryStub struct {
	CreateFn    func(context.Context, repository.NewOrder) (*model.Order, error)
	GetFn       func(context.Context, string) (*model.Order, error)
	ListFn      func(context.Context, string) ([]model.Order, error)
	AttachFn    func(context.Context, string, string) (*model.Order, error)
	SetStatusFn func(context.Context, string, repository.StatusUpdate) (*model.Order, error)

	Orders      []model.Order
	StatusCalls []StatusCall
	next        int
}

// StatusCall records one SetStatus invocation.
type StatusCall struct {
	OrderID string
	Update  repository.StatusUpdate
}

// Create tracks invocations and stores the order unless overridden.
func (s *OrderRepositoryStub) Create(ctx context.Context, req repository.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	s.next++
	order := model.Order{
		ID:            fmt.Sprintf("ord_%d", s.next),
		Number:        fmt.Sprintf("ORD-%d", s.next),
		Items:         req.Items,
		Total:         req.Total,
		Status:        model.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// Get returns a stored order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored orders by customer email.
func (s *OrderRepositoryStub) List(ctx context.Context, customerEmail string) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, customerEmail)
	}
	var out []model.Order
	for i := len(s.Orders) - 1; i >= 0; i-- {
		o := s.Orders[i]
		if customerEmail == "" || strings.EqualFold(o.CustomerEmail, customerEmail) {
			out = append(out, o)
		}
	}
	return out, nil
}

// AttachPaymentSession records the session and forces processing.
func (s *OrderRepositoryStub) AttachPaymentSession(ctx context.Context, id, sessionID string) (*model.Order, error) {
	if s.AttachFn != nil {
		return s.AttachFn(ctx, id, sessionID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].PaymentSessionID = sessionID
			s.Orders[i].Status = model.OrderStatusProcessing
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SetStatus records the call and overwrites the stored status.
func (s *OrderRepositoryStub) SetStatus(ctx context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
	s.StatusCalls = append(s.StatusCalls, StatusCall{OrderID: id, Update: update})
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, update)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders[i].Status = update.Status
			if update.TransactionID != "" {
				s.Orders[i].TransactionID = update.TransactionID
			}
			if update.TrackingNumber != "" {
				s.Orders[i].TrackingNumber = update.TrackingNumber
			}
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// NotificationRepositoryStub keeps notifications in-memory for tests.
type NotificationRepositoryStub struct {
	CreateFn func(context.Context, *model.Notification) (*model.Notification, error)

	Notifications []model.Notification
	next          int
}

// Create stores the notification unless overridden.
func (s *NotificationRepositoryStub) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, n)
	}
	s.next++
	stored := *n
	stored.ID = fmt.Sprintf("ntf_%d", s.next)
	stored.CreatedAt = time.Now()
	s.Notifications = append(s.Notifications, stored)
	return &stored, nil
}

// ListByUser returns stored notifications newest first.
func (s *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for i := len(s.Notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.Notifications[i].UserID == userID {
			out = append(out, s.Notifications[i])
		}
	}
	return out, nil
}

// UnreadCount counts stored unread notifications.
func (s *NotificationRepositoryStub) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range s.Notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips one notification to read.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			s.Notifications[i].Read = true
			n := s.Notifications[i]
			return &n, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkAllRead flips every unread notification for the user.
func (s *NotificationRepositoryStub) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	flipped := 0
	for i := range s.Notifications {
		if s.Notifications[i].UserID == userID && !s.Notifications[i].Read {
			s.Notifications[i].Read = true
			flipped++
		}
	}
	return flipped, nil
}

// Delete removes one notification.
func (s *NotificationRepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			s.Notifications = append(s.Notifications[:i], s.Notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.NotificationRepository = (*NotificationRepositoryStub)(nil)
