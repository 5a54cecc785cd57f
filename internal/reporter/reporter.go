// Package reporter executes catalog operations against the remote API and
// classifies every response into a Success or a Failure outcome.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Doer is the transport a Reporter sends requests through.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Reporter issues operations against one configured backend.
type Reporter struct {
	cfg    Config
	client Doer
	logger *slog.Logger
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger used for state transitions (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) { r.logger = l }
}

// New builds a Reporter. A nil client falls back to an *http.Client with no
// explicit timeout; the transport's defaults apply.
func New(cfg Config, client Doer, opts ...Option) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("reporter config: %w", err)
	}
	cfg.Routes = cfg.Routes.WithDefaults()
	if client == nil {
		client = &http.Client{}
	}
	r := &Reporter{cfg: cfg, client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the endpoint configuration the Reporter was built with.
func (r *Reporter) Config() Config { return r.cfg }

// Routes is shorthand for Config().Routes.
func (r *Reporter) Routes() Routes { return r.cfg.Routes }

// Execute sends op once and classifies the result. It never retries and always
// returns exactly one Outcome. An invalid operation is never sent and yields a
// Failure with StatusCode 0.
func (r *Reporter) Execute(ctx context.Context, op Operation) Outcome {
	if op.RequestID == "" {
		op.RequestID = uuid.NewString()
	}
	log := r.logger.With("request_id", op.RequestID, "action", string(op.Action), "method", op.Method)

	if err := op.Validate(); err != nil {
		log.Debug("operation rejected", "state", StateFailed, "error", err.Error())
		return &Failure{Err: err}
	}

	target := r.cfg.URL(op.Route, op.Query)
	log = log.With("url", target)
	log.Debug("operation issued", "state", StateInFlight)

	outcome := r.send(ctx, op, target)
	switch o := outcome.(type) {
	case *Success:
		log.Debug("operation finished", "state", o.State(), "status", o.StatusCode)
	case *Failure:
		attrs := []any{"state", o.State(), "status", o.StatusCode}
		if o.Err != nil {
			attrs = append(attrs, "error", o.Err.Error())
		}
		log.Debug("operation finished", attrs...)
	}
	return outcome
}

func (r *Reporter) send(ctx context.Context, op Operation, target string) Outcome {
	body, err := op.encodeBody()
	if err != nil {
		return &Failure{Err: fmt.Errorf("encode body: %w", err)}
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return &Failure{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", op.RequestID)
	if r.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return &Failure{Err: fmt.Errorf("%s %s: %w", op.Method, target, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Failure{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Failure{StatusCode: resp.StatusCode, RawBody: string(raw)}
	}

	success := &Success{StatusCode: resp.StatusCode, Description: op.Summary}
	if op.Decode != DecodeJSON {
		success.Payload = string(raw)
		return success
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &Failure{StatusCode: resp.StatusCode, RawBody: string(raw), Err: fmt.Errorf("decode response: %w", err)}
	}
	success.Payload = payload
	return success
}
