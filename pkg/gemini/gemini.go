// Package gemini wraps the Google generative AI client for single-shot
// prompts that may carry an inline document.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/holywrit/ideas/pkg/lifecycle"
)

var (
	ErrNotConfigured = errors.New("gemini api key is not configured")
	ErrGenerate      = errors.New("gemini generation failed")
	ErrEmptyResponse = errors.New("gemini returned no content")
	ErrClosed        = errors.New("gemini client is shut down")
)

// Request is one prompt. Data, when set, is sent as an inline blob of MIMEType.
type Request struct {
	Instructions string
	Prompt       string
	MIMEType     string
	Data         []byte
	JSON         bool
}

// System generates text from a Gemini model.
type System interface {
	// Start registers hooks that open the client at startup and close it on shutdown.
	Start(lc *lifecycle.Coordinator) error
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
	// Configured reports whether an API key is set.
	Configured() bool
}

type client struct {
	cfg    *Config
	logger *slog.Logger

	mu     sync.Mutex
	genai  *genai.Client
	closed bool

	// inflight counts Generate calls holding genai; shutdown waits on it
	// before closing the client.
	inflight sync.WaitGroup
}

// New creates a Gemini system. The underlying client is opened on Start
// or on first use.
func New(cfg *Config, logger *slog.Logger) System {
	return &client{
		cfg:    cfg,
		logger: logger.With("system", "gemini"),
	}
}

func (c *client) Model() string {
	return c.cfg.Model
}

func (c *client) Configured() bool {
	return c.cfg.Configured()
}

func (c *client) Start(lc *lifecycle.Coordinator) error {
	if !c.cfg.Configured() {
		c.logger.Warn("gemini api key not set, extraction disabled")
		return nil
	}

	lc.OnStartup(func() {
		if _, err := c.open(lc.Context()); err != nil {
			c.logger.Error("gemini client initialization failed", "error", err)
			return
		}
		c.logger.Info("gemini client ready", "model", c.cfg.Model)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		c.shutdown()
	})

	return nil
}

// shutdown refuses new calls, waits for in-flight ones, then closes the
// client. Each call is bounded by the configured timeout.
func (c *client) shutdown() {
	c.mu.Lock()
	c.closed = true
	gc := c.genai
	c.genai = nil
	c.mu.Unlock()

	c.inflight.Wait()

	if gc != nil {
		gc.Close()
		c.logger.Info("gemini client closed")
	}
}

func (c *client) Generate(ctx context.Context, req Request) (string, error) {
	if !c.cfg.Configured() {
		return "", ErrNotConfigured
	}

	gc, err := c.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer c.inflight.Done()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.TimeoutDuration())
	defer cancel()

	model := gc.GenerativeModel(c.cfg.Model)
	if req.Instructions != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.Instructions)},
		}
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if len(req.Data) > 0 {
		parts = append(parts, &genai.Blob{MIMEType: req.MIMEType, Data: req.Data})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// acquire returns the client and registers the caller as in flight. The
// caller must call c.inflight.Done when finished with it.
func (c *client) acquire(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gc, err := c.openLocked(ctx)
	if err != nil {
		return nil, err
	}
	c.inflight.Add(1)
	return gc, nil
}

func (c *client) open(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openLocked(ctx)
}

func (c *client) openLocked(ctx context.Context) (*genai.Client, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.genai != nil {
		return c.genai, nil
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrGenerate, err)
	}
	c.genai = gc
	return gc, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
