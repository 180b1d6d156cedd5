package aiperf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// newStatsServer answers /api/puzzles/performance with summaries for the
// known ids, honoring the puzzleId and limit parameters.
func newStatsServer(t *testing.T, known map[string]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/puzzles/performance" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		type puzzleOut struct {
			ID              string         `json:"id"`
			PerformanceData map[string]any `json:"performanceData"`
		}
		var puzzles []puzzleOut
		add := func(id string, acc float64) {
			puzzles = append(puzzles, puzzleOut{
				ID: id,
				PerformanceData: map[string]any{
					"avgAccuracy":   acc,
					"avgConfidence": 0.9,
					"wrongCount":    3,
				},
			})
		}

		if id := r.URL.Query().Get("puzzleId"); id != "" {
			if acc, ok := known[id]; ok {
				add(id, acc)
			}
		} else {
			for id, acc := range known {
				add(id, acc)
			}
		}

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"puzzles": puzzles, "total": len(puzzles)},
		})
	}))
}

func TestPuzzlePerformance(t *testing.T) {
	srv := newStatsServer(t, map[string]float64{"abc123": 0.1})
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	s, err := c.PuzzlePerformance(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("PuzzlePerformance: %v", err)
	}
	if s == nil {
		t.Fatal("expected a summary")
	}
	if s.AvgAccuracy != 0.1 || s.AvgConfidence != 0.9 || s.WrongCount != 3 {
		t.Errorf("summary mismatch: %+v", s)
	}

	missing, err := c.PuzzlePerformance(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("missing id must not error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil summary for unknown id, got %+v", missing)
	}
}

func TestBatchPuzzlePerformancePartial(t *testing.T) {
	srv := newStatsServer(t, map[string]float64{"a": 0.1, "b": 0.6})
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	got, err := c.BatchPuzzlePerformance(context.Background(), []string{"a", "missing", "b"})
	if err != nil {
		t.Fatalf("BatchPuzzlePerformance: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if _, ok := got["missing"]; ok {
		t.Error("absent upstream data must be absent from the map")
	}
	if got["a"].AvgAccuracy != 0.1 || got["b"].AvgAccuracy != 0.6 {
		t.Errorf("summaries mismatch: %+v", got)
	}
}

func TestBatchPuzzlePerformanceServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL, nil)
	got, err := c.BatchPuzzlePerformance(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("batch must be best-effort, got error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no summaries, got %v", got)
	}
}

func TestCompareJoinCompleteness(t *testing.T) {
	results := []academy.HumanResult{
		{PuzzleID: "abc123", Correct: true},
		{PuzzleID: "nodata", Correct: false},
	}
	summaries := map[string]academy.PerformanceSummary{
		"abc123": {PuzzleID: "abc123", AvgAccuracy: 0.1, AvgConfidence: 0.9},
	}

	records := Compare(results, summaries)
	if len(records) != 2 {
		t.Fatalf("got %d records, want one per human result", len(records))
	}

	if records[0].AI == nil {
		t.Fatal("abc123 should have an AI side")
	}
	if !records[0].Overconfident {
		t.Error("acc 0.1 / conf 0.9 must flag overconfident")
	}

	if records[1].AI != nil {
		t.Error("nodata must have an explicitly absent AI side")
	}
	if records[1].Overconfident {
		t.Error("no AI data cannot be overconfident")
	}
}

func TestCompareOverconfidentBoundary(t *testing.T) {
	results := []academy.HumanResult{{PuzzleID: "p"}}
	records := Compare(results, map[string]academy.PerformanceSummary{
		"p": {PuzzleID: "p", AvgAccuracy: 0.6, AvgConfidence: 0.9},
	})
	if records[0].Overconfident {
		t.Error("acc 0.6 must not flag overconfident")
	}
}

func TestListFilterParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"puzzles": []any{}, "total": 0},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.List(context.Background(), Filter{Limit: 5, SortBy: "avgAccuracy", MaxAccuracy: 0.3, ZeroAccuracyOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	for _, want := range []string{"limit=5", "sortBy=avgAccuracy", "maxAccuracy=0.3", "zeroAccuracyOnly=true"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}
