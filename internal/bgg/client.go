package bgg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/bggtools/shelfsync/internal/models"
	"github.com/bggtools/shelfsync/internal/shared"
)

const defaultBaseURL = "https://boardgamegeek.com/xmlapi2"

// Reference polling and batching behavior.
const (
	defaultBatchSize       = 20
	defaultBatchDelay      = 5 * time.Second
	defaultPollDelay       = 1500 * time.Millisecond
	defaultPollDelayCap    = 12 * time.Second
	defaultMaxPollAttempts = 8
)

// ClientOpts configures a [Client]. Zero values fall back to the
// reference behavior for the public BGG API; tests shrink the intervals.
type ClientOpts struct {
	BaseURL         string
	Transport       http.RoundTripper // underlying transport, nil for http.DefaultTransport
	MinInterval     time.Duration     // global pacing between outbound requests
	RetryWaitMin    time.Duration     // first transient-error backoff
	RetryWaitMax    time.Duration     // backoff cap
	BatchSize       int               // ids per /thing request
	BatchDelay      time.Duration     // extra pause between batches
	PollDelay       time.Duration     // first wait after a 202
	PollDelayCap    time.Duration
	MaxPollAttempts int
}

// Client fetches collections and game details from BGG through a paced,
// retrying HTTP client. All requests made by one Client share a single
// throttle, so at most one is in flight per MinInterval.
type Client struct {
	baseURL         string
	http            *retryablehttp.Client
	batchSize       int
	batchDelay      time.Duration
	pollDelay       time.Duration
	pollDelayCap    time.Duration
	maxPollAttempts int
}

// NewClient creates a BGG API client from opts.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = defaultMinInterval
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = defaultRetryWaitMin
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = defaultRetryWaitMax
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = defaultBatchDelay
	}
	if opts.PollDelay <= 0 {
		opts.PollDelay = defaultPollDelay
	}
	if opts.PollDelayCap <= 0 {
		opts.PollDelayCap = defaultPollDelayCap
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = defaultMaxPollAttempts
	}

	return &Client{
		baseURL:         strings.TrimSuffix(opts.BaseURL, "/"),
		http:            newPacedClient(opts.MinInterval, opts.RetryWaitMin, opts.RetryWaitMax, opts.Transport),
		batchSize:       opts.BatchSize,
		batchDelay:      opts.BatchDelay,
		pollDelay:       opts.PollDelay,
		pollDelayCap:    opts.PollDelayCap,
		maxPollAttempts: opts.MaxPollAttempts,
	}
}

// FetchCollection returns the deduplicated ids of boardgames owned by
// username. BGG answers 202 while it prepares the collection; the
// request is re-issued with a doubling delay until data arrives or the
// poll budget is exhausted ([shared.ErrTimeout]). Unknown users yield
// [shared.ErrUserNotFound]; any other non-success status yields
// [shared.ErrUnavailable].
func (c *Client) FetchCollection(ctx context.Context, username string) ([]int64, error) {
	safe := strings.TrimSpace(username)
	if safe == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("%s/collection?username=%s&own=1&subtype=boardgame", c.baseURL, url.QueryEscape(safe))
	delay := c.pollDelay

	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		status, body, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
		}

		switch {
		case status == http.StatusAccepted:
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay = min(delay*2, c.pollDelayCap)
			continue
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, safe)
		case status != http.StatusOK:
			return nil, fmt.Errorf("%w: status %d", shared.ErrUnavailable, status)
		}

		ids, err := ParseCollection(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUnavailable, err)
		}
		return ids, nil
	}

	return nil, shared.ErrTimeout
}

// FetchThings fetches detail records for ids in batches, strictly in
// sequence, pausing between successive batches but not after the last.
// onBatch, when non-nil, is invoked before each batch request with the
// 1-based batch number and the total. The returned count is the number
// of batch requests issued. A failed batch aborts the remaining ones
// with [shared.ErrDetailFetch]; an empty id list issues no requests.
func (c *Client) FetchThings(ctx context.Context, ids []int64, onBatch func(step, total int)) ([]models.Thing, int, error) {
	if len(ids) == 0 {
		return nil, 0, nil
	}

	batches := chunk(ids, c.batchSize)
	things := make([]models.Thing, 0, len(ids))

	for i, batch := range batches {
		if i > 0 {
			if err := sleep(ctx, c.batchDelay); err != nil {
				return nil, i, err
			}
		}
		if onBatch != nil {
			onBatch(i+1, len(batches))
		}

		got, err := c.fetchThingBatch(ctx, batch)
		if err != nil {
			return nil, i, err
		}
		things = append(things, got...)
	}

	return things, len(batches), nil
}

// fetchThingBatch fetches one batch of detail records.
func (c *Client) fetchThingBatch(ctx context.Context, ids []int64) ([]models.Thing, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	endpoint := fmt.Sprintf("%s/thing?id=%s&stats=1", c.baseURL, strings.Join(parts, ","))

	status, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDetailFetch, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", shared.ErrDetailFetch, status)
	}

	things, err := ParseThings(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrDetailFetch, err)
	}
	return things, nil
}

// get issues one paced GET and reads the full body.
func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// chunk splits ids into groups of at most size.
func chunk(ids []int64, size int) [][]int64 {
	var out [][]int64
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}
