package bgg

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Reference pacing and retry behavior for the public BGG API.
const (
	defaultMinInterval  = 5 * time.Second
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 16 * time.Second
	maxRetries          = 5
)

// pacedTransport is an [http.RoundTripper] that holds every attempt,
// including retries, until the shared limiter allows it. The limiter is
// the single owner of the pacing state, so concurrent callers serialize
// here instead of racing on a timestamp.
type pacedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// retryTransient retries only BGG's transient server errors. Everything
// else, including 404 for unknown users and 202 while a collection is
// being prepared, is returned to the caller untouched.
func retryTransient(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, err
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true, nil
	}
	return false, nil
}

// newPacedClient builds the retrying, paced HTTP client used for every
// request to BGG. After retries are exhausted the last response is
// returned as-is; callers decide success or failure from the status.
func newPacedClient(minInterval, retryWaitMin, retryWaitMax time.Duration, base http.RoundTripper) *retryablehttp.Client {
	if base == nil {
		base = http.DefaultTransport
	}

	c := retryablehttp.NewClient()
	c.Logger = nil
	c.RetryMax = maxRetries
	c.RetryWaitMin = retryWaitMin
	c.RetryWaitMax = retryWaitMax
	c.CheckRetry = retryTransient
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.HTTPClient.Transport = &pacedTransport{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		base:    base,
	}
	return c
}
