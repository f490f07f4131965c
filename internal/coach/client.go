package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"questforge/internal/config"
)

// ErrDisabled is returned when no coach endpoint is configured.
var ErrDisabled = errors.New("coach endpoint not configured (set coach.endpoint or QF_COACH_URL)")

const readChunk = 4096

type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	log      *zap.Logger
}

func NewClient(cfg config.CoachConfig, log *zap.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrDisabled
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: strings.TrimSpace(cfg.Endpoint),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     &http.Client{Timeout: cfg.Timeout},
		log:      log,
	}, nil
}

// Stream sends req and reads the event stream until [DONE] or EOF.
// onDelta, when set, is called with each text delta as it arrives.
func (c *Client) Stream(ctx context.Context, req Request, onDelta func(string)) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Stream = true
	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode coach request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build coach request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Debug("coach request", zap.String("endpoint", c.endpoint), zap.String("mode", string(req.Mode)))
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("coach request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("coach: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	dec := NewDecoder(c.log)
	buf := make([]byte, readChunk)
	for !dec.Done() {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			for _, d := range dec.Feed(buf[:n]) {
				if onDelta != nil {
					onDelta(d)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read coach stream: %w", err)
		}
	}

	res := dec.Finish()
	if res.Dropped > 0 {
		c.log.Warn("coach stream had undecodable fragments", zap.Int("dropped", res.Dropped))
	}
	return &res, nil
}
