// Package gateway is the typed HTTP client for the marketplace API. Every
// call carries the current bearer credential; responses are decoded and
// checked against the shape the caller expects.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/model"
)

// RemoteError is returned for any failed round trip: a non-2xx status, a
// transport failure (Status 0) or a response of the wrong shape.
type RemoteError struct {
	Status  int
	Message string
	cause   error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return "remote: " + e.Message
	}
	return fmt.Sprintf("remote %d: %s", e.Status, e.Message)
}

// Unwrap exposes the taxonomy sentinel matching the status class, plus the
// underlying transport or decode error when there is one.
func (e *RemoteError) Unwrap() []error {
	var errs []error
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		errs = append(errs, model.ErrValidation)
	case http.StatusUnauthorized, http.StatusForbidden:
		errs = append(errs, model.ErrAuth)
	case http.StatusNotFound:
		errs = append(errs, model.ErrNotFound)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// TokenSource yields the credential attached to outgoing calls.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	validate   *validator.Validate
	log        zerolog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the API rooted at baseURL (e.g. http://host/api).
// tokens may be nil for anonymous use. Requests are bounded only by their
// context unless WithTimeout is given.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		validate:   validator.New(),
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &RemoteError{Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "unknown error"
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			switch {
			case eb.Error != "":
				msg = eb.Error
			case eb.Message != "":
				msg = eb.Message
			}
		}
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: "malformed response", cause: err}
	}
	if err := c.check(out); err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: "unexpected response shape", cause: err}
	}
	return nil
}

// check validates decoded structs and every element of decoded slices.
func (c *Client) check(out any) error {
	switch v := out.(type) {
	case *[]wireOrder:
		for i := range *v {
			if err := c.validate.Struct(&(*v)[i]); err != nil {
				return err
			}
		}
	case *[]wireReview:
		for i := range *v {
			if err := c.validate.Struct(&(*v)[i]); err != nil {
				return err
			}
		}
	case *[]wireUser:
		for i := range *v {
			if err := c.validate.Struct(&(*v)[i]); err != nil {
				return err
			}
		}
	default:
		err := c.validate.Struct(out)
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return err
	}
	return nil
}
