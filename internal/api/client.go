package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pefman/bg-localsim/internal/models"
)

// DefaultBaseURL is where the local service listens unless reconfigured.
const DefaultBaseURL = "http://127.0.0.1:32123"

// Config holds API configuration
type Config struct {
	BaseURL string
	// CardsTTL bounds how long a ready card listing is reused.
	CardsTTL time.Duration
}

// Client talks to the local simulation service.
type Client struct {
	config Config
	http   *http.Client

	cardsMu   sync.RWMutex
	cards     *CardList
	cardsTime time.Time
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		config: Config{BaseURL: baseURL, CardsTTL: 5 * time.Minute},
		// Simulations can run long; callers bound requests with ctx.
		http: &http.Client{},
	}
}

// Error is a non-2xx response from the service.
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api status %d", e.Status)
	}
	return fmt.Sprintf("api status %d: %s", e.Status, e.Code)
}

// Card is one entry of the card listing.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CardList is the /cards payload.
type CardList struct {
	Ready bool   `json:"ready"`
	Cards []Card `json:"cards"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	u := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Code = payload.Error
		}
		return apiErr
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Health returns the reported service status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// Cards fetches the card listing. A ready listing is reused for CardsTTL;
// a not-ready one is always refetched.
func (c *Client) Cards(ctx context.Context) (*CardList, error) {
	c.cardsMu.RLock()
	if c.cards != nil && time.Since(c.cardsTime) < c.config.CardsTTL {
		cached := c.cards
		c.cardsMu.RUnlock()
		return cached, nil
	}
	c.cardsMu.RUnlock()

	var out CardList
	if err := c.do(ctx, http.MethodGet, "/cards", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Cards == nil {
		out.Cards = []Card{}
	}
	if out.Ready {
		c.cardsMu.Lock()
		c.cards, c.cardsTime = &out, time.Now()
		c.cardsMu.Unlock()
	}
	return &out, nil
}

// Simulate runs a custom board.
func (c *Client) Simulate(ctx context.Context, snapshot *models.BattleSnapshot, opts models.SimOptions) (*models.SimResult, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return c.SimulateRaw(ctx, body, opts)
}

// SimulateRaw posts an already encoded snapshot.
func (c *Client) SimulateRaw(ctx context.Context, body []byte, opts models.SimOptions) (*models.SimResult, error) {
	var out models.SimResult
	if err := c.do(ctx, http.MethodPost, "/simulate", optionQuery(opts), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimulateFromCurrent simulates the running match.
func (c *Client) SimulateFromCurrent(ctx context.Context, opts models.SimOptions) (*models.SimResult, error) {
	var out models.SimResult
	if err := c.do(ctx, http.MethodGet, "/simulate/from-current", optionQuery(opts), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func optionQuery(opts models.SimOptions) url.Values {
	q := url.Values{}
	if opts.Iterations > 0 {
		q.Set("iterations", strconv.Itoa(opts.Iterations))
	}
	if opts.TimeoutMs != nil && *opts.TimeoutMs > 0 {
		q.Set("timeoutMs", strconv.Itoa(*opts.TimeoutMs))
	}
	if opts.ThreadCount != nil && *opts.ThreadCount > 0 {
		q.Set("threads", strconv.Itoa(*opts.ThreadCount))
	}
	return q
}
