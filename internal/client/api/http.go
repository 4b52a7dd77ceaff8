package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/deepbrief/deepbrief/internal/common"
	"github.com/google/uuid"
)

// HTTPClient is the production Client speaking JSON over HTTP to the
// research service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds an HTTPClient for the given base URL. The timeout
// bounds a whole round-trip; generation calls can be slow, so callers should
// size it generously (the service synthesises a full report per request).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// detailBody is the error body shape the service uses for failures.
type detailBody struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// Idempotency key: lets the server collapse accidental duplicates
		// of the same submission.
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	return req, nil
}

// do executes the request and decodes a 2xx body into out (when out != nil).
// Non-2xx statuses are mapped onto the package error contract.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return common.ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return common.ErrInsufficientCredits
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail detailBody
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &ServerError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/profile/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Generate(ctx context.Context, gr GenerateRequest) (*GenerateResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/generate", gr)
	if err != nil {
		return nil, err
	}

	var out GenerateResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	return &out, nil
}

func (c *HTTPClient) AppendHistory(ctx context.Context, item HistoryAppend) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/history", item)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) History(ctx context.Context, userID string) ([]HistoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/history/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}

	var out []HistoryItem
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, userID string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/create-checkout-session", map[string]string{"user_id": userID})
	if err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", common.ErrCheckoutFailed
	}
	return out.URL, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, sessionID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/verify-payment?session_id="+url.QueryEscape(sessionID), nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

var _ Client = (*HTTPClient)(nil)
