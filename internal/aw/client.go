package aw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Event is a single ActivityWatch event: "this activity was ongoing at this
// moment". Ownership transfers to the server on submission.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Duration  float64        `json:"duration"`
	Data      map[string]any `json:"data"`
}

// Client talks to a local ActivityWatch server over its REST API.
type Client struct {
	baseURL    string
	clientName string
	hostname   string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. The hostname is
// resolved once and baked into the bucket ID.
func NewClient(baseURL, clientName string) *Client {
	hostname, err := os.Hostname()
	if err != nil {
		slog.Warn("could not determine hostname", "error", err)
		hostname = "unknown"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientName: clientName,
		hostname:   hostname,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// BucketID returns the conventional per-host bucket name for this client.
func (c *Client) BucketID() string {
	return fmt.Sprintf("%s_%s", c.clientName, c.hostname)
}

// CreateBucket registers the destination bucket. Called once at startup,
// before the poll loop begins. Creating a bucket that already exists is not
// an error; the server answers 304 in that case.
func (c *Client) CreateBucket(ctx context.Context, bucketID, eventType string) error {
	payload := map[string]string{
		"client":   c.clientName,
		"type":     eventType,
		"hostname": c.hostname,
	}

	endpoint := fmt.Sprintf("%s/api/0/buckets/%s", c.baseURL, url.PathEscape(bucketID))
	resp, err := c.post(ctx, endpoint, payload)
	if err != nil {
		return fmt.Errorf("could not create bucket %s: %w", bucketID, err)
	}
	defer c.discard(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotModified {
		return fmt.Errorf("bucket creation returned status %d", resp.StatusCode)
	}
	return nil
}

// Heartbeat submits one event to the bucket. Events within pulsetime seconds
// of each other are merged server-side into a continuous span. queued is
// carried for interface parity with the upstream client; this client never
// queues — a failed submission is reported to the caller and superseded by
// the next cycle.
func (c *Client) Heartbeat(ctx context.Context, bucketID string, event Event, pulsetime float64, queued bool) error {
	query := url.Values{}
	query.Set("pulsetime", strconv.FormatFloat(pulsetime, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/api/0/buckets/%s/heartbeat?%s",
		c.baseURL, url.PathEscape(bucketID), query.Encode())
	resp, err := c.post(ctx, endpoint, event)
	if err != nil {
		return fmt.Errorf("could not submit heartbeat: %w", err)
	}
	defer c.discard(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("heartbeat returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) discard(resp *http.Response) {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		slog.Warn("failed to discard response body", "error", err)
	}
	if err := resp.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}
