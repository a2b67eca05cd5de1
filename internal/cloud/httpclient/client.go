// Package httpclient implements cloud.DB over the cloud HTTP API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/pkg/api"
)

// Client представляет HTTP клиент облачного API
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
	token      string
}

var _ cloud.DB = (*Client)(nil)

// Option configures Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New создает новый клиент облачного API
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query requests one page of records after the cursor.
func (c *Client) Query(ctx context.Context, param *cloud.QueryParam) (*cloud.QueryResult, error) {
	req := api.QueryRequest{
		User:   param.User,
		Table:  param.Table,
		Cursor: param.Cursor,
		Limit:  param.Limit,
	}
	var resp api.QueryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cloud/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query request failed: %w", err)
	}

	records, err := cloud.FromAPIRecords(resp.Records)
	if err != nil {
		return nil, err
	}
	return &cloud.QueryResult{
		Cursor:  resp.Cursor,
		Records: records,
		End:     resp.End,
	}, nil
}

// BatchInsert sends new records.
func (c *Client) BatchInsert(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return c.batch(ctx, "/api/v1/cloud/records/insert", req)
}

// BatchUpdate sends modified records.
func (c *Client) BatchUpdate(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return c.batch(ctx, "/api/v1/cloud/records/update", req)
}

// BatchDelete sends tombstones.
func (c *Client) BatchDelete(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return c.batch(ctx, "/api/v1/cloud/records/delete", req)
}

func (c *Client) batch(ctx context.Context, path string, req *cloud.BatchRequest) ([]models.RowResult, error) {
	body := api.BatchRequest{
		User:    req.User,
		Table:   req.Table,
		Records: cloud.ToAPIRecords(req.Records),
	}
	var resp api.BatchResponse
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	if len(resp.Results) != len(req.Records) {
		return nil, fmt.Errorf("%w: got %d results for %d records", cloud.ErrCloudError, len(resp.Results), len(req.Records))
	}
	return cloud.FromAPIResults(resp.Results), nil
}

// Lock acquires the cloud lock for the device of the token.
func (c *Client) Lock(ctx context.Context) (time.Duration, error) {
	var resp api.LockResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cloud/lock", nil, &resp); err != nil {
		return 0, fmt.Errorf("lock request failed: %w", err)
	}
	return time.Duration(resp.LeaseMillis) * time.Millisecond, nil
}

// HeartBeat extends the lock lease.
func (c *Client) HeartBeat(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cloud/heartbeat", nil, nil); err != nil {
		return fmt.Errorf("heartbeat request failed: %w", err)
	}
	return nil
}

// UnLock releases the lock.
func (c *Client) UnLock(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/cloud/unlock", nil, nil); err != nil {
		return fmt.Errorf("unlock request failed: %w", err)
	}
	return nil
}

// PutBlob uploads asset content.
func (c *Client) PutBlob(ctx context.Context, hash string, data []byte) error {
	path := "/api/v1/cloud/blobs/" + url.PathEscape(hash)
	if _, err := c.do(ctx, http.MethodPut, path, "application/octet-stream", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("put blob request failed: %w", err)
	}
	return nil
}

// GetBlob downloads asset content.
func (c *Client) GetBlob(ctx context.Context, hash string) ([]byte, error) {
	path := "/api/v1/cloud/blobs/" + url.PathEscape(hash)
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, fmt.Errorf("get blob request failed: %w", err)
	}
	return data, nil
}

// Health checks server availability.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doJSON выполняет JSON запрос
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	var (
		bodyReader  io.Reader
		contentType string
	)
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}

	respBody, err := c.do(ctx, method, path, contentType, bodyReader)
	if err != nil {
		return err
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", cloud.ErrCloudError, err)
		}
	}
	return nil
}

// do выполняет HTTP запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cloud.ErrCloudError, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", cloud.ErrCloudError, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("cloud request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w (%d): %s", cloud.ErrorFromCode(errResp.Error), resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("%w: status %d: %s", cloud.ErrCloudError, resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
