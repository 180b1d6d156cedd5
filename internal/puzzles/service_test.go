package puzzles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// newTestServer serves a fixed set of puzzles under /api/puzzles/{id}.
func newTestServer(t *testing.T, puzzles map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/puzzles/")
		body, ok := puzzles[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

const validPuzzle = `{
	"success": true,
	"data": {
		"puzzle": {
			"id": "abc123",
			"train": [{"input": [[1,0],[0,1]], "output": [[0,1],[1,0]]}],
			"test": [{"input": [[1,1],[0,0]]}]
		},
		"performanceData": {"avgAccuracy": 0.1}
	}
}`

func TestFetchByID(t *testing.T) {
	srv := newTestServer(t, map[string]string{"abc123": validPuzzle})
	defer srv.Close()

	s := New(srv.URL, nil)
	p, err := s.FetchByID(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("FetchByID: %v", err)
	}
	if p == nil {
		t.Fatal("FetchByID returned nil for a valid id")
	}
	if p.ID != "abc123" {
		t.Errorf("ID = %q", p.ID)
	}
	if p.Width != 2 || p.Height != 2 {
		t.Errorf("dims = %dx%d, want 2x2", p.Width, p.Height)
	}
	for i, row := range p.Test[0].Input {
		if len(row) != p.Width {
			t.Errorf("row %d length %d != declared width %d", i, len(row), p.Width)
		}
	}
	if p.Difficulty != academy.DifficultyHard {
		t.Errorf("Difficulty = %v, want hard for avgAccuracy 0.1", p.Difficulty)
	}
	if p.SizeHint != "small" {
		t.Errorf("SizeHint = %q, want small", p.SizeHint)
	}
	if len(p.Emojis) != 2 {
		t.Errorf("palette = %v, want entries for values 0 and 1 only", p.Emojis)
	}
}

func TestFetchByIDDegradesToNil(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"ragged":   `{"success": true, "data": {"puzzle": {"id": "ragged", "train": [{"input": [[1],[2,3]], "output": [[1]]}], "test": [{"input": [[1]]}]}}}`,
		"garbage":  `{not json`,
		"unsucces": `{"success": false}`,
	})
	defer srv.Close()

	s := New(srv.URL, nil)
	for _, id := range []string{"missing", "ragged", "garbage", "unsucces"} {
		p, err := s.FetchByID(context.Background(), id)
		if err != nil {
			t.Errorf("id %s: read-path failure must not error, got %v", id, err)
		}
		if p != nil {
			t.Errorf("id %s: expected nil puzzle, got %+v", id, p)
		}
	}

	if _, err := s.FetchByID(context.Background(), ""); err == nil {
		t.Error("empty id must be rejected with an error")
	}
}

func TestFetchBatchPreservesOrder(t *testing.T) {
	second := strings.ReplaceAll(validPuzzle, "abc123", "def456")
	third := strings.ReplaceAll(validPuzzle, "abc123", "ghi789")
	srv := newTestServer(t, map[string]string{
		"abc123": validPuzzle,
		"def456": second,
		"ghi789": third,
	})
	defer srv.Close()

	s := New(srv.URL, nil)
	got, err := s.FetchBatch(context.Background(), []string{"ghi789", "nope1", "abc123", "nope2", "def456"})
	if err != nil {
		t.Fatalf("FetchBatch: %v", err)
	}

	want := []string{"ghi789", "abc123", "def456"}
	if len(got) != len(want) {
		t.Fatalf("got %d puzzles, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("result[%d] = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestNormalizeNoPerformanceDataDefaultsEasy(t *testing.T) {
	var env envelope
	noPerf := `{"success": true, "data": {"puzzle": {"id": "x", "train": [{"input": [[1]], "output": [[2]]}], "test": [{"input": [[3]]}]}}}`
	if err := json.Unmarshal([]byte(noPerf), &env); err != nil {
		t.Fatal(err)
	}
	p, err := normalize(env.Data.Puzzle, env.Data.PerformanceData)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.Difficulty != academy.DifficultyEasy {
		t.Errorf("Difficulty = %v, want easy when no data", p.Difficulty)
	}
}

func TestSizeHint(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{3, 3, "small"},
		{6, 2, "small"},
		{7, 3, "medium"},
		{15, 15, "medium"},
		{16, 4, "large"},
		{30, 30, "large"},
	}
	for _, tt := range tests {
		if got := sizeHint(tt.w, tt.h); got != tt.want {
			t.Errorf("sizeHint(%d, %d) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}
