// Package sync keeps a local order cache converged with the central order
// service. A kitchen display keeps serving from its cache while the network
// is down: reads come from the cache, mutations fall back to local state and
// are replayed once the remote answers again.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"comanda/internal/pkg/errs"
)

// OrderSnapshot is one order as served by the central REST API.
type OrderSnapshot struct {
	ID          string         `json:"id"`
	TableNumber int            `json:"tableNumber"`
	WaiterID    string         `json:"waiterId"`
	WaiterName  string         `json:"waiterName"`
	TodoJunto   bool           `json:"todoJunto"`
	Status      string         `json:"status"`
	Items       []ItemSnapshot `json:"items"`
	CreatedAt   time.Time      `json:"createdAt"`
	ConfirmedAt *time.Time     `json:"confirmedAt,omitempty"`
	PreparedAt  *time.Time     `json:"preparedAt,omitempty"`
	PaidAt      *time.Time     `json:"paidAt,omitempty"`
}

// ItemSnapshot is one order line within an OrderSnapshot.
type ItemSnapshot struct {
	ID             string    `json:"id"`
	MenuItemID     string    `json:"menuItemId"`
	NameES         string    `json:"nameEs"`
	NameEN         string    `json:"nameEn,omitempty"`
	Price          float64   `json:"price"`
	Customizations []string  `json:"customizations"`
	CustomText     string    `json:"customText,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Remote is the upstream order API the cache converges against.
// Implementations must return an error matching errs.ErrRemoteUnavailable
// when the upstream cannot be reached, so callers can fall back to local
// state; any other error is a remote rejection and must propagate.
type Remote interface {
	FetchOrders(ctx context.Context) ([]OrderSnapshot, error)
	PushItemStatus(ctx context.Context, orderID, itemID, status string) error
	PushOrderStatus(ctx context.Context, orderID, status string) error
}

// HTTPRemote talks to the central order service over its REST API.
type HTTPRemote struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPRemote creates a remote client for the given base URL,
// e.g. "http://comanda-server:8080".
func NewHTTPRemote(baseURL string, logger *slog.Logger) *HTTPRemote {
	return &HTTPRemote{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// FetchOrders retrieves the full current order list.
func (r *HTTPRemote) FetchOrders(ctx context.Context) ([]OrderSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewRemoteUnavailableError("fetch orders", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errs.NewRemoteUnavailableError(
			"fetch orders",
			fmt.Errorf("order service returned status %d", resp.StatusCode),
		)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	// The list endpoint wraps its payload as {"orders": [...]}.
	var envelope struct {
		Orders []OrderSnapshot `json:"orders"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order list: %w", err)
	}

	r.logger.Debug("fetched orders", "count", len(envelope.Orders))
	return envelope.Orders, nil
}

// PushItemStatus reports one item transition to the central service.
func (r *HTTPRemote) PushItemStatus(ctx context.Context, orderID, itemID, status string) error {
	url := fmt.Sprintf("%s/api/orders/%s/items/%s/status", r.baseURL, orderID, itemID)
	return r.putStatus(ctx, "push item status", url, status)
}

// PushOrderStatus reports one order transition to the central service.
func (r *HTTPRemote) PushOrderStatus(ctx context.Context, orderID, status string) error {
	url := fmt.Sprintf("%s/api/orders/%s/status", r.baseURL, orderID)
	return r.putStatus(ctx, "push order status", url, status)
}

func (r *HTTPRemote) putStatus(ctx context.Context, operation, url, status string) error {
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return errs.NewRemoteUnavailableError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.NewRemoteUnavailableError(
			operation,
			fmt.Errorf("order service returned status %d", resp.StatusCode),
		)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	return nil
}
