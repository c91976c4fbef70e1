package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olepukh/storefront/internal/app"
	"github.com/olepukh/storefront/internal/config"
	"github.com/olepukh/storefront/internal/domain/model"
	"github.com/olepukh/storefront/internal/mailer"
	"github.com/olepukh/storefront/internal/server/http/handlers"
	"github.com/olepukh/storefront/internal/sideeffect"
	"github.com/olepukh/storefront/internal/storage/memory"
	testhelpers "github.com/olepukh/storefront/internal/test"
	"github.com/olepukh/storefront/internal/usecase"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.StorefrontFacadeStub{}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"email": "ann@example.com", "name": "Ann", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order listing, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/notifications", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("notifications should require auth, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for metrics, got %d", resp.Code)
	}
}

func TestAdminRouteRejectsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.StorefrontFacadeStub{
		AccountFacadeStub: testhelpers.AccountFacadeStub{GetUserFn: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Admin: false}, nil
		}},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"status": "shipped"})
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/ord_1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", resp.Code)
	}
}

// Full order lifecycle through the HTTP surface backed by the in-memory
// store: place an order for Ann, confirm payment session attachment, ship it
// from the admin console and check the notification and email fan-out.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	store := memory.New()
	cfg := &config.Config{
		PublicBaseURL:       "http://shop.local",
		AdminEmails:         []string{"admin@example.com"},
		Gateway:             config.GatewayCredentials{Secret: "s3cret"},
		SideEffectQueueSize: 16,
		WorkerPoolSize:      1,
	}

	orderUC := usecase.NewOrderUseCase(store.Orders())
	notifUC := usecase.NewNotificationUseCase(store.Notifications(), store.Users(), logger)
	accountUC := usecase.NewAccountUseCase(store.Users(), testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(id int64) (string, error) { return "token", nil },
		ParseFn: func(string) (int64, error) { return 1, nil },
	}, cfg)

	sender := &testhelpers.SenderStub{}
	publisher := &testhelpers.PublisherStub{}
	dispatcher := sideeffect.NewDispatcher(notifUC, mailer.New(sender), publisher, cfg.SideEffectQueueSize, cfg.WorkerPoolSize, logger)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	facade := app.NewStorefrontFacade(orderUC, notifUC, accountUC, &testhelpers.GatewayStub{}, dispatcher, cfg)
	engine := Setup(facade, logger)

	// Ann registers first so order events resolve to her account. The
	// token strategy stub maps every token to her id; she is also the
	// configured admin for the console call below.
	register := func(email string) {
		body, _ := json.Marshal(map[string]string{"email": email, "name": "Ann", "password": "pass"})
		req := httptest.NewRequest(http.MethodPost, "/user/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("register %s: %d", email, resp.Code)
		}
	}
	register("admin@example.com")

	body, _ := json.Marshal(map[string]any{
		"items":         []map[string]any{{"productId": "p1", "name": "Widget", "price": 500, "quantity": 2}},
		"total":         1000,
		"customerName":  "Ann",
		"customerEmail": "admin@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "identity")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
		Payment struct {
			SessionID string `json:"sessionId"`
		} `json:"payment"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	if created.Order.Status != "processing" {
		t.Fatalf("session attachment should leave the order processing, got %s", created.Order.Status)
	}
	if created.Payment.SessionID == "" {
		t.Fatal("expected a payment session")
	}

	body, _ = json.Marshal(map[string]string{"status": "shipped", "trackingNumber": "TRK-9"})
	req = httptest.NewRequest(http.MethodPatch, "/admin/orders/"+created.Order.ID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept-Encoding", "identity")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin ship: %d %s", resp.Code, resp.Body.String())
	}

	// Side effects are asynchronous; wait for the shipped notification.
	deadline := time.After(2 * time.Second)
	for {
		notifications, err := store.Notifications().ListByUser(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("list notifications: %v", err)
		}
		shipped := 0
		for _, n := range notifications {
			if n.Type == model.NotificationOrderShipped {
				shipped++
			}
		}
		if shipped == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected one shipped notification, have %d total", len(notifications))
		case <-time.After(10 * time.Millisecond):
		}
	}

	deadline = time.After(2 * time.Second)
	for {
		shippedEmail := false
		for _, email := range sender.Sent() {
			if email.To == "admin@example.com" && email.Subject != "" {
				shippedEmail = true
			}
		}
		if shippedEmail {
			break
		}
		select {
		case <-deadline:
			t.Fatal("expected a shipping email attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

var _ handlers.StorefrontFacade = (*testhelpers.StorefrontFacadeStub)(nil)
var _ handlers.StorefrontFacade = (*app.StorefrontFacade)(nil)
