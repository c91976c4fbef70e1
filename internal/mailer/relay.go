package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"context"
)

// RelaySender delivers emails through an HTTP mail relay service.
type RelaySender struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRelaySender creates an HTTP relay client with a default timeout.
func NewRelaySender(baseURL string, logger *slog.Logger) (*RelaySender, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail relay url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail relay url must be absolute")
	}
	return &RelaySender{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts the email to the relay's send endpoint.
func (s *RelaySender) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return err
	}

	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/send")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		s.logger.Error("mail relay rejected email",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return fmt.Errorf("mail relay error: %s", resp.Status)
	}
	return nil
}
