package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

// DefaultPath is the storefront route that fans a ready push out to the
// customer's devices.
const DefaultPath = "/api/send-push"

// HTTPNotifier posts ReadyNotification payloads as JSON.
type HTTPNotifier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPNotifier creates a notifier posting to endpoint. A nil client gets a
// client with a 5 second timeout.
func NewHTTPNotifier(endpoint string, client *http.Client) (*HTTPNotifier, error) {
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("push endpoint")
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPNotifier{endpoint: endpoint, client: client}, nil
}

func (n *HTTPNotifier) NotifyReady(ctx context.Context, msg ports.ReadyNotification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint answered %s", resp.Status)
	}
	return nil
}
