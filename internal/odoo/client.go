// Package odoo is the gateway to an Odoo server.
//
// Data calls use the JSON-2 convention: POST {base}/json/2/{model}/{method}
// with the keyword arguments as the JSON body and the API key as a bearer
// token. Password login uses the JSON-RPC /web/session/authenticate endpoint.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/odoocli/internal/model"
)

// CredentialSource supplies the session used for each call.
type CredentialSource interface {
	// Credentials returns the current session and whether one exists.
	Credentials() (model.Session, bool)
}

// Caller is the part of Client used by tab services.
type Caller interface {
	Call(ctx context.Context, model, method string, params Params) (any, error)
	CallInto(ctx context.Context, model, method string, params Params, out any) error
}

// Options configures a Client.
type Options struct {
	Logger *slog.Logger

	// HTTPClient overrides the transport. When nil a client with Timeout is built.
	HTTPClient *http.Client

	// Timeout is applied to the default HTTP client. Zero means none.
	Timeout time.Duration
}

// Client sends calls to the server of the current session. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	creds      CredentialSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a gateway reading credentials from creds on every call.
func NewClient(creds CredentialSource, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		creds:      creds,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithCredentials returns a client sharing c's transport and logger but
// reading credentials from creds.
func (c *Client) WithCredentials(creds CredentialSource) *Client {
	cp := *c
	cp.creds = creds

	return &cp
}

// StaticCredentials is a fixed session, used to try a key before it is stored.
type StaticCredentials model.Session

func (s StaticCredentials) Credentials() (model.Session, bool) {
	return model.Session(s), true
}

// Endpoint returns the JSON-2 URL for model and method under base.
func Endpoint(base, model, method string) string {
	return strings.TrimRight(base, "/") + "/json/2/" + model + "/" + method
}

// Call invokes method on model and returns the decoded JSON reply as-is
// ([]any, map[string]any, float64, string, bool or nil).
func (c *Client) Call(ctx context.Context, model, method string, params Params) (any, error) {
	var out any
	if err := c.CallInto(ctx, model, method, params, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CallInto invokes method on model and decodes the reply into out.
func (c *Client) CallInto(ctx context.Context, model, method string, params Params, out any) error {
	session, ok := c.creds.Credentials()
	if !ok {
		return ErrNotAuthenticated
	}

	reqID := uuid.NewString()
	log := c.logger.With(
		slog.String("model", model),
		slog.String("method", method),
		slog.String("request_id", reqID),
	)

	body, err := c.post(ctx, Endpoint(session.URL, model, method), params, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+session.APIKey)
		req.Header.Set("X-Odoo-Database", session.Database)
	}, log)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			te.Model, te.Method = model, method
		}

		log.Debug("odoo call failed", slog.Any("error", err))

		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		derr := &DecodeError{Err: err}
		log.Debug("odoo call failed", slog.Any("error", derr))

		return derr
	}

	return nil
}

// post sends payload as JSON to url and returns the body of a 2xx reply.
func (c *Client) post(ctx context.Context, url string, payload any, decorate func(*http.Request), log *slog.Logger) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	log.Debug("sending odoo request", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")

	if decorate != nil {
		decorate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	log.Debug("odoo response", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	return body, nil
}

// SearchRead runs search_read on model and decodes the rows into T.
func SearchRead[T any](ctx context.Context, c Caller, model string, params Params) ([]T, error) {
	var rows []T
	if err := c.CallInto(ctx, model, "search_read", params, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}
