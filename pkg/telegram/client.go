// Package telegram provides the terminal transport for the outgoing-call
// pipeline: it executes Bot API calls over HTTPS after the middleware chain
// has had its pass at the payload.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xooniverse/parsemodesetter/pkg/logger"
	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
	"github.com/xooniverse/parsemodesetter/pkg/pipeline"
)

// DefaultAPIBase is the production Bot API endpoint.
const DefaultAPIBase = "https://api.telegram.org"

// Config holds bot transport configuration.
type Config struct {
	Token   string        `json:"token"`
	APIBase string        `json:"api_base,omitempty"` // for local Bot API servers
	Timeout time.Duration `json:"-"`
}

// Bot executes Bot API calls through a middleware chain. It implements
// plugin.Registrar so parse-mode plugins install directly into it.
type Bot struct {
	token      string
	base       string
	httpClient *http.Client

	mu         sync.RWMutex
	order      []string
	middleware map[string]pipeline.Middleware
}

// NewBot creates a Bot for the given config.
func NewBot(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Bot{
		token:      cfg.Token,
		base:       base,
		httpClient: &http.Client{Timeout: timeout},
		middleware: make(map[string]pipeline.Middleware),
	}, nil
}

// Use registers a named middleware. Registration order is chain order:
// earlier middleware sees the request first. Re-using a name replaces the
// middleware in place.
func (b *Bot) Use(name string, mw pipeline.Middleware) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.middleware[name]; !ok {
		b.order = append(b.order, name)
	}
	b.middleware[name] = mw
}

// Remove unregisters a middleware by name. Unknown names are a no-op.
func (b *Bot) Remove(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.middleware[name]; !ok {
		return
	}
	delete(b.middleware, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Call executes one Bot API method with a JSON payload.
func (b *Bot) Call(ctx context.Context, method parsemode.Method, payload parsemode.Payload) (*pipeline.Response, error) {
	return b.CallWithFiles(ctx, method, payload, nil)
}

// CallWithFiles executes one Bot API method with binary attachments. The
// attachments bypass the middleware chain entirely; only the payload fields
// are subject to rewriting.
func (b *Bot) CallWithFiles(ctx context.Context, method parsemode.Method, payload parsemode.Payload, files map[string]io.Reader) (*pipeline.Response, error) {
	req := &pipeline.Request{
		Method:  method,
		Payload: payload,
		Files:   files,
	}

	b.mu.RLock()
	mws := make([]pipeline.Middleware, 0, len(b.order))
	for _, name := range b.order {
		mws = append(mws, b.middleware[name])
	}
	b.mu.RUnlock()

	handler := pipeline.Chain(b.transport, mws...)
	return handler(ctx, req)
}

// transport is the terminal handler: it encodes the request and posts it to
// the Bot API.
func (b *Bot) transport(ctx context.Context, req *pipeline.Request) (*pipeline.Response, error) {
	callID := uuid.NewString()
	url := b.base + "/bot" + b.token + "/" + req.Method.String()

	logger.DebugCF("telegram", "API call", map[string]any{
		"call_id": callID,
		"method":  req.Method.String(),
		"files":   len(req.Files),
	})

	var httpReq *http.Request
	var err error
	if len(req.Files) == 0 {
		httpReq, err = b.jsonRequest(ctx, url, req)
	} else {
		httpReq, err = b.multipartRequest(ctx, url, req)
	}
	if err != nil {
		return nil, err
	}

	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("telegram: %s: %w", req.Method, err)
	}
	defer httpResp.Body.Close()

	var resp pipeline.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("telegram: %s: decoding response: %w", req.Method, err)
	}

	if !resp.OK {
		logger.WarnCF("telegram", "API call failed", map[string]any{
			"call_id":     callID,
			"method":      req.Method.String(),
			"error_code":  resp.ErrorCode,
			"description": resp.Description,
		})
	}
	return &resp, nil
}

func (b *Bot) jsonRequest(ctx context.Context, url string, req *pipeline.Request) (*http.Request, error) {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("telegram: %s: encoding payload: %w", req.Method, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (b *Bot) multipartRequest(ctx context.Context, url string, req *pipeline.Request) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range req.Payload {
		var field string
		if s, ok := value.(string); ok {
			field = s
		} else {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("telegram: %s: encoding field %s: %w", req.Method, key, err)
			}
			field = string(encoded)
		}
		if err := w.WriteField(key, field); err != nil {
			return nil, err
		}
	}

	for name, reader := range req.Files {
		part, err := w.CreateFormFile(name, name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, reader); err != nil {
			return nil, fmt.Errorf("telegram: %s: attachment %s: %w", req.Method, name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	return httpReq, nil
}
