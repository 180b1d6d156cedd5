// Package aiperf fetches aggregate AI model performance from the external
// statistics API and joins it against locally recorded human outcomes for
// the side-by-side comparison view.
package aiperf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

const (
	defaultTimeout   = 15 * time.Second
	batchConcurrency = 8
)

// Filter narrows a performance listing. Zero values are omitted from the
// request.
type Filter struct {
	Limit            int
	SortBy           string
	MinAccuracy      float64
	MaxAccuracy      float64
	ZeroAccuracyOnly bool
}

// Client talks to the AI performance statistics API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client against the given statistics API base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type listEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Puzzles []struct {
			ID              string          `json:"id"`
			PerformanceData *rawPerformance `json:"performanceData"`
		} `json:"puzzles"`
		Total int `json:"total"`
	} `json:"data"`
}

type rawPerformance struct {
	AvgAccuracy       float64 `json:"avgAccuracy"`
	AvgConfidence     float64 `json:"avgConfidence"`
	WrongCount        int     `json:"wrongCount"`
	TotalExplanations int     `json:"totalExplanations"`
	TotalFeedback     int     `json:"totalFeedback"`
	NegativeFeedback  int     `json:"negativeFeedback"`
	CompositeScore    float64 `json:"compositeScore"`
}

// List fetches performance summaries matching the filter.
func (c *Client) List(ctx context.Context, filter Filter) ([]academy.PerformanceSummary, error) {
	params := url.Values{}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.SortBy != "" {
		params.Set("sortBy", filter.SortBy)
	}
	if filter.MinAccuracy > 0 {
		params.Set("minAccuracy", strconv.FormatFloat(filter.MinAccuracy, 'f', -1, 64))
	}
	if filter.MaxAccuracy > 0 {
		params.Set("maxAccuracy", strconv.FormatFloat(filter.MaxAccuracy, 'f', -1, 64))
	}
	if filter.ZeroAccuracyOnly {
		params.Set("zeroAccuracyOnly", "true")
	}

	env, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	var out []academy.PerformanceSummary
	for _, p := range env.Data.Puzzles {
		if p.PerformanceData == nil {
			continue
		}
		out = append(out, summaryFrom(p.ID, p.PerformanceData))
	}
	return out, nil
}

// PuzzlePerformance fetches the summary for one puzzle id. Missing data is
// a nil summary, not an error.
func (c *Client) PuzzlePerformance(ctx context.Context, id string) (*academy.PerformanceSummary, error) {
	if id == "" {
		return nil, fmt.Errorf("empty puzzle id")
	}
	params := url.Values{}
	params.Set("puzzleId", id)

	env, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	for _, p := range env.Data.Puzzles {
		if p.ID == id && p.PerformanceData != nil {
			s := summaryFrom(p.ID, p.PerformanceData)
			return &s, nil
		}
	}
	return nil, nil
}

// BatchPuzzlePerformance fetches summaries for a set of ids concurrently.
// The result is best-effort: ids with no upstream data are absent from the
// map, and one failed fetch never blocks the others.
func (c *Client) BatchPuzzlePerformance(ctx context.Context, ids []string) (map[string]academy.PerformanceSummary, error) {
	out := make(map[string]academy.PerformanceSummary, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			summary, err := c.PuzzlePerformance(gctx, id)
			if err != nil {
				c.logger.Warn("performance fetch failed", zap.String("id", id), zap.Error(err))
				return nil
			}
			if summary == nil {
				return nil
			}
			mu.Lock()
			out[id] = *summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*listEnvelope, error) {
	u := c.baseURL + "/api/puzzles/performance"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build performance request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performance request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("performance API status %d", resp.StatusCode)
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode performance response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("performance API reported failure")
	}
	return &env, nil
}

func summaryFrom(id string, raw *rawPerformance) academy.PerformanceSummary {
	return academy.PerformanceSummary{
		PuzzleID:          id,
		AvgAccuracy:       raw.AvgAccuracy,
		AvgConfidence:     raw.AvgConfidence,
		WrongCount:        raw.WrongCount,
		TotalExplanations: raw.TotalExplanations,
		TotalFeedback:     raw.TotalFeedback,
	}
}
