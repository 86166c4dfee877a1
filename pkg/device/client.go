package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/datatug/sdtug/pkg/files"
	"github.com/datatug/sdtug/pkg/logging"
	"github.com/datatug/sdtug/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	endpointStatus   = "/api/system/status"
	endpointList     = "/api/sd/list"
	endpointDownload = "/api/sd/download"
	endpointView     = "/api/sd/view"
	endpointDelete   = "/api/sd/delete"
)

// ProtectedPaths are refused by the firmware's delete handler.
var ProtectedPaths = []string{"/", "/logs", "/sensor_data"}

type ClientOption func(*Client)

func NewClient(root url.URL, o ...ClientOption) *Client {
	client := &Client{
		Root:    root,
		timeout: 10 * time.Second,
	}
	for _, opt := range o {
		opt(client)
	}
	return client
}

func WithHttpClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithRequestTimeout bounds each request that does not stream a body to the caller.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client talks to the REST API of the controller's web server.
type Client struct {
	Root    url.URL
	client  *http.Client
	timeout time.Duration
}

func (c *Client) RootURL() url.URL {
	return c.Root
}

func (c *Client) RootTitle() string {
	root := c.Root
	root.User = nil
	return root.String()
}

func (c *Client) httpClient() *http.Client {
	if c.client == nil {
		return http.DefaultClient
	}
	return c.client
}

func (c *Client) endpointURL(endpoint string, filePath string) string {
	u := c.Root
	u.Path = strings.TrimSuffix(u.Path, "/") + endpoint
	if filePath != "" {
		q := url.Values{}
		q.Set("path", filePath)
		u.RawQuery = q.Encode()
	} else {
		u.RawQuery = ""
	}
	return u.String()
}

// do sends a request and returns the response when the status is 2xx.
// On any other status the body is consumed and a *StatusError returned.
func (c *Client) do(ctx context.Context, method, endpoint, filePath, op string) (*http.Response, error) {
	reqURL := c.endpointURL(endpoint, filePath)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := logging.L().With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)
	if filePath != "" {
		log = log.With(zap.String("path", filePath))
	}

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	duration := time.Since(started)
	metricName := strings.ReplaceAll(strings.TrimPrefix(endpoint, "/api/"), "/", "_")
	if err != nil {
		metrics.RecordDeviceRequest(metricName, 0, duration)
		log.Debug("device request failed", zap.Error(err), zap.Duration("duration", duration))
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	metrics.RecordDeviceRequest(metricName, resp.StatusCode, duration)
	log.Debug("device request completed", zap.Int("status", resp.StatusCode), zap.Duration("duration", duration))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() {
			_ = resp.Body.Close()
		}()
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return resp, nil
}

func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err = json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func (c *Client) getJSON(ctx context.Context, endpoint, filePath, op string, o any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, endpoint, filePath, op)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err = json.Unmarshal(body, o); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 || ctx == nil {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// SystemStatus fetches /api/system/status.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.getJSON(ctx, endpointStatus, "", "fetch system status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StorageStatus returns the SD card part of the system status.
func (c *Client) StorageStatus(ctx context.Context) (StorageStatus, error) {
	status, err := c.SystemStatus(ctx)
	if err != nil {
		return StorageStatus{}, err
	}
	return status.SD, nil
}

// ListDir fetches the listing of dirPath. A 503 response unwraps to ErrNotReady.
func (c *Client) ListDir(ctx context.Context, dirPath string) (files.Listing, error) {
	var listing files.Listing
	if err := c.getJSON(ctx, endpointList, dirPath, "list directory", &listing); err != nil {
		return files.Listing{}, err
	}
	if listing.Path == "" {
		listing.Path = dirPath
	}
	return listing, nil
}

// Download streams the file at filePath into w and returns the number of bytes written.
// The request is not bounded by the client timeout, only by ctx.
func (c *Client) Download(ctx context.Context, filePath string, w io.Writer) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, endpointDownload, filePath, "download file")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.ContentLength > 0 && n != resp.ContentLength {
		return n, fmt.Errorf("download incomplete: %d of %d bytes transferred", n, resp.ContentLength)
	}
	metrics.RecordDownload(n)
	return n, nil
}

// View fetches at most max bytes of the file at filePath for inline display.
func (c *Client) View(ctx context.Context, filePath string, max int64) (*ViewContent, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, endpointView, filePath, "view file")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	content := &ViewContent{
		Path:        filePath,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
		Data:        data,
	}
	if int64(len(data)) > max {
		content.Data = data[:max]
		content.Truncated = true
	}
	return content, nil
}

// IsProtectedPath reports whether the firmware refuses to delete filePath.
func IsProtectedPath(filePath string) bool {
	for _, p := range ProtectedPaths {
		if filePath == p {
			return true
		}
	}
	return false
}

// Delete removes a file. Protected paths are refused without a request.
func (c *Client) Delete(ctx context.Context, filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path not specified")
	}
	if IsProtectedPath(filePath) {
		return fmt.Errorf("%w: %s", ErrProtectedPath, filePath)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodDelete, endpointDelete, filePath, "delete file")
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}
