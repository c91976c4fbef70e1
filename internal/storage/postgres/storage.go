package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/domain/repository"
	"github.com/olepukh/storefront/internal/storage/ident"
)

// DBPool is the subset of pgxpool.Pool used by the storage. It exists so
// tests can substitute a mock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. It implements the
// same repository.Factory contract as the in-memory store, so it can be
// substituted without touching the services above it.
type Storage struct {
	pool    DBPool
	numbers *ident.Sequence
	logger  *slog.Logger
}

type orderRepository struct{ storage *Storage }

type notificationRepository struct{ storage *Storage }

type userRepository struct{ storage *Storage }

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, numbers: ident.NewSequence(), logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Orders() repository.OrderRepository { return &orderRepository{storage: s} }

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository { return &userRepository{storage: s} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            items JSONB NOT NULL,
            total BIGINT NOT NULL,
            status TEXT NOT NULL,
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            payment_session_id TEXT NOT NULL DEFAULT '',
            transaction_id TEXT NOT NULL DEFAULT '',
            tracking_number TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS notifications (
            id TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            type TEXT NOT NULL,
            title TEXT NOT NULL,
            message TEXT NOT NULL,
            data JSONB,
            read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(customer_email, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func newNotificationID() string { return uuid.New().String() }

const orderColumns = `id, number, items, total, status, customer_name, customer_email,
                      payment_session_id, transaction_id, tracking_number, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order model.Order
		items []byte
	)
	err := row.Scan(&order.ID, &order.Number, &items, &order.Total, &order.Status,
		&order.CustomerName, &order.CustomerEmail, &order.PaymentSessionID,
		&order.TransactionID, &order.TrackingNumber, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &order, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, req repository.NewOrder) (*model.Order, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	query := `INSERT INTO orders (id, number, items, total, status, customer_name, customer_email)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING ` + orderColumns
	row := r.storage.pool.QueryRow(ctx, query,
		ident.OrderID(), r.storage.numbers.Next(), items, req.Total,
		model.OrderStatusPending, req.CustomerName, req.CustomerEmail)
	return scanOrder(row)
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context, customerEmail string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	args := []any{}
	if customerEmail != "" {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE LOWER(customer_email)=$1 ORDER BY created_at DESC`
		args = append(args, strings.ToLower(customerEmail))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) AttachPaymentSession(ctx context.Context, id, sessionID string) (*model.Order, error) {
	query := `UPDATE orders SET payment_session_id=$1, status=$2, updated_at=NOW()
              WHERE id=$3
              RETURNING ` + orderColumns
	return scanOrder(r.storage.pool.QueryRow(ctx, query, sessionID, model.OrderStatusProcessing, id))
}

func (r *orderRepository) SetStatus(ctx context.Context, id string, update repository.StatusUpdate) (*model.Order, error) {
	query := `UPDATE orders SET status=$1,
                     transaction_id=CASE WHEN $2='' THEN transaction_id ELSE $2 END,
                     tracking_number=CASE WHEN $3='' THEN tracking_number ELSE $3 END,
                     updated_at=NOW()
              WHERE id=$4
              RETURNING ` + orderColumns
	return scanOrder(r.storage.pool.QueryRow(ctx, query, update.Status, update.TransactionID, update.TrackingNumber, id))
}

// --- NotificationRepository implementation ---

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return nil, fmt.Errorf("encode notification data: %w", err)
	}

	const query = `INSERT INTO notifications (id, user_id, type, title, message, data)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at`
	stored := *n
	stored.ID = newNotificationID()
	if err := r.storage.pool.QueryRow(ctx, query, stored.ID, stored.UserID, stored.Type, stored.Title, stored.Message, data).Scan(&stored.CreatedAt); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	query := `SELECT id, user_id, type, title, message, data, read, created_at
              FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var (
			n    model.Notification
			data []byte
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, fmt.Errorf("decode notification data: %w", err)
			}
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND read=FALSE`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	const query = `UPDATE notifications SET read=TRUE WHERE id=$1
                   RETURNING id, user_id, type, title, message, data, read, created_at`
	var (
		n    model.Notification
		data []byte
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("decode notification data: %w", err)
		}
	}
	return &n, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	const query = `UPDATE notifications SET read=TRUE WHERE user_id=$1 AND read=FALSE`
	tag, err := r.storage.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM notifications WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, name, passwordHash string, admin bool) (*model.User, error) {
	const query = `INSERT INTO users (email, name, password_hash, is_admin)
                   VALUES (LOWER($1), $2, $3, $4)
                   RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, name, passwordHash, admin).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = strings.ToLower(email)
	u.Name = name
	u.PasswordHash = passwordHash
	u.Admin = admin
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, name, password_hash, is_admin, created_at FROM users WHERE email=LOWER($1)`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, name, password_hash, is_admin, created_at FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
