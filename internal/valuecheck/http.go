package valuecheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/brokerlens/internal/domain/model"
	"github.com/okian/brokerlens/internal/domain/types"
	"github.com/okian/brokerlens/pkg/logger"
)

// progressInterval throttles progress logging while fetching entries.
const progressInterval = time.Second

// HTTPClient wraps http.Client with the service base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// get performs a GET request and returns the response for a 200 status.
func (c *HTTPClient) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: %d %s", ErrUnexpectedStatus, path, resp.StatusCode, body)
	}
	return resp, nil
}

// getJSON decodes a 200 JSON response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, v interface{}) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// checkHealth verifies the service is serving metrics.
func (c *HTTPClient) checkHealth(ctx context.Context) error {
	resp, err := c.get(ctx, "/healthz")
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// fetchDataset retrieves the fixtures the service computed its views from.
func (c *HTTPClient) fetchDataset(ctx context.Context) (model.Dataset, error) {
	var ds model.Dataset
	err := c.getJSON(ctx, "/dataset", &ds)
	return ds, err
}

// fetchLeaderboard retrieves the top limit rows ordered by by.
func (c *HTTPClient) fetchLeaderboard(ctx context.Context, by string, limit int) ([]types.Entry, error) {
	q := url.Values{}
	q.Set("by", by)
	q.Set("limit", strconv.Itoa(limit))
	var rows []types.Entry
	err := c.getJSON(ctx, "/leaderboard?"+q.Encode(), &rows)
	return rows, err
}

// fetchEntries retrieves /rank/{id} for every id with at most workers requests in flight.
func (c *HTTPClient) fetchEntries(ctx context.Context, ids []string, workers int) (map[string]model.NavigatorValueEntry, error) {
	log := logger.Get()
	log.Info(ctx, "retrieving value entries", logger.Int("navigators", len(ids)), logger.Int("workers", workers))

	var (
		mu         sync.Mutex
		entries    = make(map[string]model.NavigatorValueEntry, len(ids))
		retrieved  atomic.Int64
		lastReport atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for _, id := range ids {
		g.Go(func() error {
			var entry model.NavigatorValueEntry
			if err := c.getJSON(gctx, "/rank/"+url.PathEscape(id), &entry); err != nil {
				return fmt.Errorf("rank %s: %w", id, err)
			}
			mu.Lock()
			entries[id] = entry
			mu.Unlock()

			done := retrieved.Add(1)
			now := time.Now().UnixNano()
			if last := lastReport.Load(); now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
				log.Debug(gctx, "ranking progress", logger.Int("retrieved", int(done)), logger.Int("total", len(ids)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
