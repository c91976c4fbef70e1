package sideeffect

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olepukh/storefront/internal/domain/model"
)

// Notifier records an in-app notification for the order's customer. An
// order whose customer has no account is skipped silently.
type Notifier interface {
	NotifyOrderEvent(ctx context.Context, event model.NotificationType, order model.Order) error
}

// EmailSender delivers the customer-facing email for an order event.
type EmailSender interface {
	SendOrderEmail(ctx context.Context, event model.NotificationType, order model.Order) error
}

// EventPublisher fans the order out to the event broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, routingKey string, order model.Order) error
}

// Dispatcher consumes the side-effect queue with a worker pool. Producers
// enqueue and never await; every failure here is logged, never propagated
// back to the request path.
type Dispatcher struct {
	notifier  Notifier
	mailer    EmailSender
	publisher EventPublisher
	workers   int
	logger    *slog.Logger

	tasks  chan Task
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the side-effect worker pool.
func NewDispatcher(notifier Notifier, mailer EmailSender, publisher EventPublisher, queueSize, workers int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		notifier:  notifier,
		mailer:    mailer,
		publisher: publisher,
		workers:   workers,
		logger:    logger,
		tasks:     make(chan Task, queueSize),
	}
}

// Enqueue hands a task to the worker pool without blocking. A full queue
// drops the task; the primary state mutation has already committed, so the
// drop is logged and the request proceeds.
func (d *Dispatcher) Enqueue(task Task) bool {
	select {
	case d.tasks <- task:
		return true
	default:
		d.logger.Error("side-effect queue full, dropping task",
			slog.String("event", string(task.Event)),
			slog.String("order", task.Order.ID),
		)
		return false
	}
}

// Start launches background processing.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-d.tasks:
			if !ok {
				return
			}
			d.handle(ctx, task)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, task Task) {
	if task.InApp && task.Event != "" {
		if err := d.notifier.NotifyOrderEvent(ctx, task.Event, task.Order); err != nil {
			d.logger.Error("notification side effect failed",
				slog.String("event", string(task.Event)),
				slog.String("order", task.Order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if task.Email && task.Event != "" {
		if err := d.mailer.SendOrderEmail(ctx, task.Event, task.Order); err != nil {
			d.logger.Error("email side effect failed",
				slog.String("event", string(task.Event)),
				slog.String("order", task.Order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if task.RoutingKey != "" {
		if err := d.publisher.PublishOrderEvent(ctx, task.RoutingKey, task.Order); err != nil {
			d.logger.Error("event publish failed",
				slog.String("routing_key", task.RoutingKey),
				slog.String("order", task.Order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}
