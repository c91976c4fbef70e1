package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
	"github.com/olepukh/storefront/internal/storage/ident"
)

// Storage is the in-memory repository facade. It is the default store and
// the authoritative order ledger when no database is configured.
type Storage struct {
	mu sync.Mutex

	orders     map[string]*model.Order
	orderSeq   []string
	numbers    *ident.Sequence
	notifByID  map[string]*model.Notification
	notifOrder map[int64][]string
	usersByID  map[int64]*model.User
	userByMail map[string]*model.User
	nextUserID int64
}

type orderRepository struct{ storage *Storage }

type notificationRepository struct{ storage *Storage }

type userRepository struct{ storage *Storage }

// New creates empty in-memory storage. Order numbers are seeded from the
// current time so they look monotonic but restart from a new base on every
// process start.
func New() *Storage {
	return &Storage{
		orders:     make(map[string]*model.Order),
		numbers:    ident.NewSequence(),
		notifByID:  make(map[string]*model.Notification),
		notifOrder: make(map[int64][]string),
		usersByID:  make(map[int64]*model.User),
		userByMail: make(map[string]*model.User),
		nextUserID: 1,
	}
}

func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{storage: s} }

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }

// --- OrderRepository implementation ---

func (r *orderRepository) Create(_ context.Context, req repository.NewOrder) (*model.Order, error) {
	now := time.Now()
	order := &model.Order{
		ID:            ident.OrderID(),
		Number:        r.storage.numbers.Next(),
		Items:         append([]model.OrderItem(nil), req.Items...),
		Total:         req.Total,
		Status:        model.OrderStatusPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	r.storage.orders[order.ID] = order
	r.storage.orderSeq = append(r.storage.orderSeq, order.ID)
	return cloneOrder(order), nil
}

func (r *orderRepository) Get(_ context.Context, id string) (*model.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	order, ok := r.storage.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepository) List(_ context.Context, customerEmail string) ([]model.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	result := make([]model.Order, 0, len(r.storage.orderSeq))
	for i := len(r.storage.orderSeq) - 1; i >= 0; i-- {
		order := r.storage.orders[r.storage.orderSeq[i]]
		if customerEmail != "" && !strings.EqualFold(order.CustomerEmail, customerEmail) {
			continue
		}
		result = append(result, *cloneOrder(order))
	}
	return result, nil
}

func (r *orderRepository) AttachPaymentSession(_ context.Context, id, sessionID string) (*model.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	order, ok := r.storage.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.PaymentSessionID = sessionID
	order.Status = model.OrderStatusProcessing
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func (r *orderRepository) SetStatus(_ context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	order, ok := r.storage.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = update.Status
	if update.TransactionID != "" {
		order.TransactionID = update.TransactionID
	}
	if update.TrackingNumber != "" {
		order.TrackingNumber = update.TrackingNumber
	}
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func cloneOrder(order *model.Order) *model.Order {
	clone := *order
	clone.Items = append([]model.OrderItem(nil), order.Items...)
	return &clone
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	stored := *n
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()
	if stored.Data != nil {
		data := make(map[string]string, len(stored.Data))
		for k, v := range stored.Data {
			data[k] = v
		}
		stored.Data = data
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	r.storage.notifByID[stored.ID] = &stored
	r.storage.notifOrder[stored.UserID] = append([]string{stored.ID}, r.storage.notifOrder[stored.UserID]...)

	clone := stored
	return &clone, nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID int64, limit int) ([]model.Notification, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	ids := r.storage.notifOrder[userID]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	result := make([]model.Notification, 0, len(ids))
	for _, id := range ids {
		result = append(result, *r.storage.notifByID[id])
	}
	return result, nil
}

func (r *notificationRepository) UnreadCount(_ context.Context, userID int64) (int, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	count := 0
	for _, id := range r.storage.notifOrder[userID] {
		if !r.storage.notifByID[id].Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id string) (*model.Notification, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	n, ok := r.storage.notifByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	n.Read = true
	clone := *n
	return &clone, nil
}

func (r *notificationRepository) MarkAllRead(_ context.Context, userID int64) (int, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	flipped := 0
	for _, id := range r.storage.notifOrder[userID] {
		if n := r.storage.notifByID[id]; !n.Read {
			n.Read = true
			flipped++
		}
	}
	return flipped, nil
}

func (r *notificationRepository) Delete(_ context.Context, id string) (bool, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	n, ok := r.storage.notifByID[id]
	if !ok {
		return false, nil
	}
	delete(r.storage.notifByID, id)

	ids := r.storage.notifOrder[n.UserID]
	for i, stored := range ids {
		if stored == id {
			r.storage.notifOrder[n.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return true, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(_ context.Context, email, name, passwordHash string, admin bool) (*model.User, error) {
	key := strings.ToLower(email)

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	if _, exists := r.storage.userByMail[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	user := &model.User{
		ID:           r.storage.nextUserID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Admin:        admin,
		CreatedAt:    time.Now(),
	}
	r.storage.nextUserID++
	r.storage.usersByID[user.ID] = user
	r.storage.userByMail[key] = user

	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	user, ok := r.storage.userByMail[strings.ToLower(email)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()
	user, ok := r.storage.usersByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
