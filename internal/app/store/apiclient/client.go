// Package apiclient is the HTTP core shared by the backend gateways.
//
// Every call takes the caller's *models.Session explicitly; the client keeps
// no credential of its own. Failures are classified into ErrUnauthorized,
// ErrNotFound, *APIError and ErrUnreachable (see errors.go).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/longrichadmin/internal/app/system/metrics"
	"github.com/dalemusser/longrichadmin/internal/domain/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a success body is decoded.
const maxResponseBytes = 8 << 20

// Client talks to the backend REST API rooted at a base URL
// (e.g. http://localhost:5000/api).
type Client struct {
	baseURL string
	http    *http.Client
	upload  *http.Client // no client timeout; uploads run under the caller's deadline
	log     *zap.Logger
}

// New builds a Client whose transport is traced with otelhttp.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		upload:  &http.Client{Transport: transport},
		log:     logger,
	}
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DoJSON sends body (when non-nil) as JSON and decodes a 2xx response into
// out (when non-nil).
func (c *Client) DoJSON(ctx context.Context, sess *models.Session, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, sess, method, path, query, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(c.http, req, path, out)
}

// DoMultipart streams form as multipart/form-data. The body is encoded while
// it is sent; a failure reading one of the files is reported as such rather
// than as an unreachable backend.
func (c *Client) DoMultipart(ctx context.Context, sess *models.Session, method, path string, form *Form, out any) error {
	body, contentType, encoded := form.Encode()

	req, err := c.newRequest(ctx, sess, method, path, nil, body)
	if err != nil {
		body.Close()
		<-encoded
		return err
	}
	req.Header.Set("Content-Type", contentType)

	sendErr := c.do(c.upload, req, path, out)
	body.Close()
	if err := <-encoded; err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("encode %s %s form: %w", method, path, err)
	}
	return sendErr
}

// Ping checks that the backend answers HTTP at all. Any status counts as
// reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, nil, http.MethodGet, "/", nil, nil)
	if err != nil {
		return err
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackend(req.Method, "unreachable", time.Since(start))
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	metrics.ObserveBackend(req.Method, strconv.Itoa(resp.StatusCode), time.Since(start))
	return nil
}

func (c *Client) newRequest(ctx context.Context, sess *models.Session, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if bearer := sess.Bearer(); bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	return req, nil
}

func (c *Client) do(hc *http.Client, req *http.Request, path string, out any) error {
	start := time.Now()
	resp, err := hc.Do(req)
	dur := time.Since(start)
	if err != nil {
		metrics.ObserveBackend(req.Method, "unreachable", dur)
		c.log.Warn("backend unreachable",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Duration("duration", dur),
			zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, req.Method, path, err)
	}
	defer resp.Body.Close()

	metrics.ObserveBackend(req.Method, strconv.Itoa(resp.StatusCode), dur)
	c.log.Debug("backend call",
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", dur),
		zap.String("request_id", req.Header.Get("X-Request-ID")))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, req.Method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s response: %w", req.Method, path, err)
	}
	return nil
}
