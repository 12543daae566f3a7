// Package api talks to the persistence API that serves the concept graph
// and stores decks.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
)

// DefaultTimeout bounds each request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

const (
	pathGraph = "/api/data"
	pathDecks = "/api/flashcards"
)

var _ deck.Persister = (*Client)(nil)

// Client is an HTTP client for the persistence API.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Graph fetches the concept graph.
func (c *Client) Graph(ctx context.Context) (*conceptgraph.Graph, error) {
	var doc conceptgraph.Document
	if err := c.do(ctx, http.MethodGet, pathGraph, nil, &doc); err != nil {
		return nil, err
	}
	g, err := conceptgraph.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return g, nil
}

// ListDecks fetches every stored deck with its words resolved.
func (c *Client) ListDecks(ctx context.Context) ([]deck.Resolved, error) {
	var decks []deck.Resolved
	if err := c.do(ctx, http.MethodGet, pathDecks, nil, &decks); err != nil {
		return nil, err
	}
	if decks == nil {
		decks = []deck.Resolved{}
	}
	return decks, nil
}

// CreateDeck stores a new deck.
func (c *Client) CreateDeck(ctx context.Context, req deck.Request) (*deck.Resolved, error) {
	var out deck.Resolved
	if err := c.do(ctx, http.MethodPost, pathDecks, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDeck replaces the words and name of deck id.
func (c *Client) UpdateDeck(ctx context.Context, id int, req deck.Request) (*deck.Resolved, error) {
	var out deck.Resolved
	if err := c.do(ctx, http.MethodPut, deckPath(id)+"/content", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDeck removes deck id.
func (c *Client) DeleteDeck(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, deckPath(id), nil, nil)
}

// LoadAll fetches the graph and the deck list concurrently.
func (c *Client) LoadAll(ctx context.Context) (*conceptgraph.Graph, []deck.Resolved, error) {
	var (
		g     *conceptgraph.Graph
		decks []deck.Resolved
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = c.Graph(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		decks, err = c.ListDecks(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return g, decks, nil
}

func deckPath(id int) string {
	return pathDecks + "/" + strconv.Itoa(id)
}

// do sends a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	u := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
