// Package puzzles fetches ARC task definitions from the puzzle data service
// and normalizes them into the display-oriented shape the rest of the
// application consumes.
package puzzles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

const (
	defaultTimeout = 15 * time.Second

	// batchConcurrency bounds concurrent per-id fetches in FetchBatch.
	batchConcurrency = 8
)

// Service is the puzzle source adapter.
type Service struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New creates a Service against the given puzzle API base URL.
func New(baseURL string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// envelope is the wire shape of the puzzle data service.
type envelope struct {
	Success bool `json:"success"`
	Data    *struct {
		Puzzle          *rawPuzzle      `json:"puzzle"`
		PerformanceData *rawPerformance `json:"performanceData"`
	} `json:"data"`
}

type rawPuzzle struct {
	ID    string `json:"id"`
	Train []struct {
		Input  academy.Grid `json:"input"`
		Output academy.Grid `json:"output"`
	} `json:"train"`
	Test []struct {
		Input  academy.Grid `json:"input"`
		Output academy.Grid `json:"output"`
	} `json:"test"`
}

type rawPerformance struct {
	AvgAccuracy float64 `json:"avgAccuracy"`
}

// FetchByID retrieves and normalizes one puzzle. Not-found, transport
// failure, and malformed responses all degrade to a nil puzzle with a
// logged warning so batch callers can skip rather than abort.
func (s *Service) FetchByID(ctx context.Context, id string) (*academy.Puzzle, error) {
	if id == "" {
		return nil, fmt.Errorf("empty puzzle id")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/puzzles/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("build puzzle request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("puzzle fetch failed", zap.String("id", id), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		s.logger.Warn("puzzle not found", zap.String("id", id))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("puzzle fetch bad status", zap.String("id", id), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		s.logger.Warn("puzzle response malformed", zap.String("id", id), zap.Error(err))
		return nil, nil
	}
	if !env.Success || env.Data == nil || env.Data.Puzzle == nil {
		s.logger.Warn("puzzle envelope empty", zap.String("id", id))
		return nil, nil
	}

	puzzle, err := normalize(env.Data.Puzzle, env.Data.PerformanceData)
	if err != nil {
		s.logger.Warn("puzzle rejected", zap.String("id", id), zap.Error(err))
		return nil, nil
	}
	return puzzle, nil
}

// FetchBatch fetches the given ids concurrently, drops failures, and
// preserves the relative input order of the ids that succeeded.
func (s *Service) FetchBatch(ctx context.Context, ids []string) ([]*academy.Puzzle, error) {
	results := make([]*academy.Puzzle, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.FetchByID(gctx, id)
			if err != nil {
				s.logger.Warn("batch entry skipped", zap.String("id", id), zap.Error(err))
				return nil
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*academy.Puzzle, 0, len(ids))
	for _, p := range results {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// normalize validates the raw task and attaches presentation metadata.
func normalize(raw *rawPuzzle, perf *rawPerformance) (*academy.Puzzle, error) {
	p := &academy.Puzzle{ID: raw.ID}
	for _, pair := range raw.Train {
		p.Train = append(p.Train, academy.GridPair{Input: pair.Input, Output: pair.Output})
	}
	for _, pair := range raw.Test {
		p.Test = append(p.Test, academy.TestPair{Input: pair.Input, Output: pair.Output})
	}
	if len(p.Test) > 0 {
		p.Width, p.Height = p.Test[0].Input.Dims()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	avg, hasData := 0.0, false
	if perf != nil {
		avg, hasData = perf.AvgAccuracy, true
	}
	p.Difficulty = academy.TierForAccuracy(avg, hasData)
	p.Emojis = paletteFor(p)
	p.SizeHint = sizeHint(p.Width, p.Height)
	return p, nil
}
