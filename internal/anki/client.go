package anki

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
)

// APIVersion is the AnkiConnect protocol version sent with every request.
const APIVersion = 6

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("ankiconnect unavailable")

// APIError is an error reported by Anki itself in the response envelope.
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ankiconnect %s: %s", e.Action, e.Message)
}

// DecodeError is returned when a response cannot be parsed.
type DecodeError struct {
	Action string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ankiconnect %s: invalid response: %v", e.Action, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsModelExists reports whether err is Anki refusing to create a note type
// that is already there.
func IsModelExists(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "already exists")
}

// Invoker sends one AnkiConnect action.
type Invoker interface {
	Invoke(ctx context.Context, action string, params, result any) error
}

// Client talks to AnkiConnect over HTTP. Transport failures trip a circuit
// breaker so that a stopped Anki fails fast for the rest of a batch.
// Errors reported by Anki do not count as failures.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// NewClient creates a client for cfg.ConnectURL. A nil httpClient uses a
// client with a 30 second timeout.
func NewClient(cfg config.AnkiConfig, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	c := &Client{url: cfg.ConnectURL, http: httpClient, log: log}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ankiconnect",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			return err == nil || errors.As(err, &apiErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

// Invoke sends action with params and decodes the result into result,
// which may be nil when the result is not needed.
func (c *Client) Invoke(ctx context.Context, action string, params, result any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.invoke(ctx, action, params, result)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, action, err)
	}
	return err
}

func (c *Client) invoke(ctx context.Context, action string, params, result any) error {
	body, err := json.Marshal(request{Action: action, Version: APIVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ankiconnect %s: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ankiconnect %s: failed to read response: %w", action, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ankiconnect %s: status %d", action, resp.StatusCode)
	}

	var env response
	if err := json.Unmarshal(data, &env); err != nil {
		return &DecodeError{Action: action, Body: data, Err: err}
	}
	if env.Error != nil {
		return &APIError{Action: action, Message: *env.Error}
	}

	if result == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return &DecodeError{Action: action, Body: data, Err: err}
	}
	return nil
}

// Version returns the AnkiConnect protocol version. It doubles as a
// reachability probe.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.Invoke(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// StoreMediaFile uploads data into Anki's media folder as filename.
func (c *Client) StoreMediaFile(ctx context.Context, filename string, data []byte) (string, error) {
	params := map[string]string{
		"filename": filename,
		"data":     base64.StdEncoding.EncodeToString(data),
	}

	var stored string
	if err := c.Invoke(ctx, "storeMediaFile", params, &stored); err != nil {
		return "", err
	}
	if stored == "" {
		stored = filename
	}
	return stored, nil
}
