package odoo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// AuthRequest holds the password login parameters.
type AuthRequest struct {
	URL      string
	Database string
	Login    string
	Password string
}

// AuthResult is the session info returned by a successful login.
type AuthResult struct {
	UID      int64
	Username string
	Name     string
	Database string

	// Raw is the complete result object.
	Raw map[string]any
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	ID      string    `json:"id"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	DB       string         `json:"db"`
	Login    string         `json:"login"`
	Password string         `json:"password"`
	Context  map[string]any `json:"context"`
}

type rpcResponse struct {
	Result map[string]any `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    *struct {
			Message string `json:"message"`
		} `json:"data"`
	} `json:"error"`
}

// AuthEndpoint returns the session authentication URL under base.
func AuthEndpoint(base string) string {
	return strings.TrimRight(base, "/") + "/web/session/authenticate"
}

// Authenticate validates login and password against the server's session
// endpoint. It does not touch the credential source.
func (c *Client) Authenticate(ctx context.Context, req AuthRequest) (*AuthResult, error) {
	log := c.logger.With(
		slog.String("model", "web.session"),
		slog.String("method", "authenticate"),
		slog.String("login", req.Login),
	)

	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		ID:      uuid.NewString(),
		Params: rpcParams{
			DB:       req.Database,
			Login:    req.Login,
			Password: req.Password,
			Context:  map[string]any{},
		},
	}

	body, err := c.post(ctx, AuthEndpoint(req.URL), payload, nil, log)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			te.Model, te.Method = "web.session", "authenticate"
		}

		log.Debug("authentication failed", slog.Any("error", err))

		return nil, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		derr := &DecodeError{Err: err}
		log.Debug("authentication failed", slog.Any("error", derr))

		return nil, derr
	}

	if uid := asInt(resp.Result["uid"]); uid != 0 {
		return &AuthResult{
			UID:      uid,
			Username: asString(resp.Result["username"]),
			Name:     asString(resp.Result["name"]),
			Database: asString(resp.Result["db"]),
			Raw:      resp.Result,
		}, nil
	}

	if resp.Error != nil {
		msg := "authentication error"
		if resp.Error.Data != nil && resp.Error.Data.Message != "" {
			msg = resp.Error.Data.Message
		} else if resp.Error.Message != "" {
			msg = resp.Error.Message
		}

		rerr := &RPCError{Code: resp.Error.Code, Message: msg}
		log.Debug("authentication failed", slog.Any("error", rerr))

		return nil, rerr
	}

	log.Debug("authentication failed", slog.Any("error", ErrInvalidCredentials))

	return nil, ErrInvalidCredentials
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
