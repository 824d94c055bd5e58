package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

var (
	// ErrTimeout means the upstream call did not complete within the
	// configured bound and was cancelled.
	ErrTimeout = errors.New("ml service request timed out")
	// ErrUnreachable means the upstream connection could not be
	// established at all.
	ErrUnreachable = errors.New("ml service unreachable")
)

// Client talks to the external forecasting service. It performs single
// attempts only; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Response carries an upstream reply to be relayed verbatim.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Recommend forwards one GET /recommend call to the forecasting service and
// returns whatever it replied, including non-success statuses. Transport
// failures are classified as ErrTimeout or ErrUnreachable.
func (c *Client) Recommend(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/recommend")
}

// FetchProductNames retrieves the service's product listing for the
// valid-name cache. Satisfies namecache.Fetcher.
func (c *Client) FetchProductNames(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}
	var body struct {
		Products []string `json:"products"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("failed to decode product listing: %w", err)
	}
	return body.Products, nil
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classify(err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
