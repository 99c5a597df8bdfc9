package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"carelink/internal/shared/config"
	"carelink/internal/shared/logger"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 2 * time.Second
)

// Client talks JSON-RPC to an Odoo-style helpdesk. A single
// authenticated session (uid) is shared by all callers; the mutex
// serializes calls so concurrent users never interleave requests on
// the session.
type Client struct {
	endpoint string
	database string
	username string
	password string

	httpClient *http.Client
	log        logger.Interface

	retryAttempts int
	retryDelay    time.Duration

	reqID atomic.Int64

	mu  sync.Mutex
	uid int64
}

func NewClient(cfg *config.HelpdeskConfig, log logger.Interface) *Client {
	timeout := time.Duration(cfg.RPCTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:      strings.TrimRight(cfg.URL, "/") + "/jsonrpc",
		database:      cfg.Database,
		username:      cfg.Username,
		password:      cfg.Password,
		httpClient:    &http.Client{Timeout: timeout},
		log:           log,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
}

type rpcRequest struct {
	Jsonrpc string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

type rpcFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"data"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcFault       `json:"error"`
}

// Authenticate establishes the shared session. Callers normally do not
// need it; ExecuteKw authenticates lazily.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticate(ctx)
}

// authenticate refreshes the cached uid. Caller must hold c.mu.
func (c *Client) authenticate(ctx context.Context) error {
	raw, err := c.call(ctx, "common", "authenticate",
		[]interface{}{c.database, c.username, c.password, map[string]interface{}{}})
	if err != nil {
		return err
	}

	var uid int64
	// Odoo answers false, not an error, on bad credentials.
	if err := json.Unmarshal(raw, &uid); err != nil || uid == 0 {
		return &AuthError{Reason: "credentials rejected"}
	}
	c.uid = uid
	return nil
}

// ExecuteKw runs model.method on the remote with at most three
// attempts. Permanent faults abort immediately; any other failure
// waits the fixed delay, authenticates afresh and retries. An
// exhausted budget is wrapped in CallError carrying the last cause.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []interface{}, kwargs map[string]interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}

	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx); err != nil {
				return nil, err
			}
		}

		if c.uid == 0 {
			if err := c.authenticate(ctx); err != nil {
				var ae *AuthError
				if errors.As(err, &ae) {
					return nil, err
				}
				lastErr = err
				c.log.Warnw("helpdesk authentication attempt failed",
					"attempt", attempt, "error", err)
				continue
			}
		}

		raw, err := c.call(ctx, "object", "execute_kw",
			[]interface{}{c.database, c.uid, c.password, model, method, args, kwargs})
		if err == nil {
			return raw, nil
		}
		if IsPermanent(err) {
			return nil, err
		}

		lastErr = err
		// Retries always re-authenticate; the session may be the
		// reason the call failed.
		c.uid = 0
		c.log.Warnw("helpdesk call attempt failed",
			"model", model, "method", method, "attempt", attempt, "error", err)
	}

	return nil, &CallError{Model: model, Method: method, Attempts: c.retryAttempts, Err: lastErr}
}

func (c *Client) sleep(ctx context.Context) error {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// call performs one JSON-RPC round trip and classifies the outcome.
func (c *Client) call(ctx context.Context, service, method string, args []interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		Jsonrpc: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      c.reqID.Add(1),
	})
	if err != nil {
		return nil, &TransientError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransientError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransientError{Op: "request", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Op: "read response", Err: err}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(payload, &rpcResp); err != nil {
		return nil, &TransientError{Op: "decode response", Err: err}
	}
	if rpcResp.Error != nil {
		return nil, classifyFault(rpcResp.Error)
	}
	return rpcResp.Result, nil
}

// classifyFault maps a server-side fault onto the retry taxonomy using
// the exception name the server reports.
func classifyFault(f *rpcFault) error {
	name := f.Data.Name
	reason := f.Data.Message
	if reason == "" {
		reason = f.Message
	}

	switch {
	case strings.Contains(name, "AccessDenied"), strings.Contains(name, "SessionExpired"):
		return &AuthError{Reason: reason}
	case strings.Contains(name, "MissingError"):
		return &PermanentError{Name: name, Reason: reason, NotFound: true}
	case strings.Contains(name, "AccessError"), strings.Contains(name, "ValidationError"), strings.Contains(name, "UserError"):
		return &PermanentError{Name: name, Reason: reason}
	default:
		return &TransientError{Op: "call", Err: fmt.Errorf("server fault %s: %s", name, reason)}
	}
}
