package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hris-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxErrorBody = 512

// Client talks JSON to the REST backend rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger ...*zap.Logger) *Client {
	l := zap.L().Named("remote.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("remote.client")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// getJSON collapses concurrent GETs of the same path into one round trip.
// The shared fetch runs detached from any single caller, bounded by the HTTP
// client timeout; each caller still stops waiting when its own ctx ends.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(path, func() (interface{}, error) {
		var raw json.RawMessage
		if err := c.doJSON(fetchCtx, http.MethodGet, path, nil, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ErrBackendUnavailable.WithCause(ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return res.Err
	}
	if res.Shared {
		c.logger.Debug("list request shared", zap.String("path", path))
	}
	if err := json.Unmarshal(res.Val.(json.RawMessage), out); err != nil {
		return ErrMalformedResponse.WithCause(err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	respBody, err := c.send(req, resourceOf(path))
	if method != http.MethodGet {
		// Lists started before this mutation must not be shared with
		// refreshes issued after it.
		c.sf.Forget(resourceOf(path))
	}
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return ErrMalformedResponse.WithCause(err)
	}
	return nil
}

// send executes req and returns the body of a 2xx response. Every failure
// comes back as one of the package's AppErrors.
func (c *Client) send(req *http.Request, resource string) ([]byte, error) {
	log := contextutil.GetLogger(req.Context(), c.logger)
	m := getMetrics()
	started := time.Now()

	resp, err := c.http.Do(req)
	m.requestLatency.WithLabelValues(resource, req.Method).Observe(time.Since(started).Seconds())
	if err != nil {
		m.requestsTotal.WithLabelValues(resource, req.Method, "transport_error").Inc()
		log.Warn("backend call failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, ErrBackendUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		m.requestsTotal.WithLabelValues(resource, req.Method, "read_error").Inc()
		return nil, ErrBackendUnavailable.WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.requestsTotal.WithLabelValues(resource, req.Method, "rejected").Inc()
		excerpt := strings.TrimSpace(string(body))
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		se := &StatusError{
			Method: req.Method,
			URL:    req.URL.String(),
			Status: resp.StatusCode,
			Body:   excerpt,
		}
		log.Warn("backend rejected call",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
		)
		return nil, rejected(se)
	}

	m.requestsTotal.WithLabelValues(resource, req.Method, "ok").Inc()
	log.Debug("backend call ok",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	return body, nil
}

// resourceOf keeps metric label cardinality bounded: "/employees/42" and
// "/employees/savefile" both report as "employees".
func resourceOf(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
