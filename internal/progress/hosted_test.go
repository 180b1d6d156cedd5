package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// hostedStub emulates the hosted backend's attribute and statistics APIs.
type hostedStub struct {
	mu    sync.Mutex
	attrs map[string]map[string]string
	stats map[string]int
}

func newHostedStub() *hostedStub {
	return &hostedStub{
		attrs: make(map[string]map[string]string),
		stats: make(map[string]int),
	}
}

func (h *hostedStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /titles/{title}/players/{player}/data", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "s3cret", r.Header.Get("X-Secret-Key"))
		h.mu.Lock()
		defer h.mu.Unlock()
		attrs := h.attrs[r.PathValue("player")]
		json.NewEncoder(w).Encode(map[string]any{
			"success": attrs != nil,
			"data":    map[string]any{"attributes": attrs},
		})
	})
	mux.HandleFunc("POST /titles/{title}/players/{player}/data", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Attributes map[string]string `json:"attributes"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		h.mu.Lock()
		h.attrs[r.PathValue("player")] = body.Attributes
		h.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /titles/{title}/statistics", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			PlayerID  string `json:"playerId"`
			Statistic string `json:"statistic"`
			Value     int    `json:"value"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		h.mu.Lock()
		h.stats[body.PlayerID+"/"+body.Statistic] = body.Value
		h.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestHostedBackendRoundTrip(t *testing.T) {
	stub := newHostedStub()
	srv := httptest.NewServer(stub.handler(t))
	defer srv.Close()

	backend := NewHostedBackend(srv.URL, "T1234", "s3cret")
	ctx := context.Background()

	_, err := backend.GetProfile(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	profile := &academy.PlayerProfile{
		PlayerID:    "p1",
		RankLevel:   2,
		RankName:    "Ensign",
		TotalPoints: 640,
		Completed:   5,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, backend.PutProfile(ctx, profile))

	got, err := backend.GetProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, profile.TotalPoints, got.TotalPoints)
	assert.Equal(t, profile.Completed, got.Completed)
	assert.Equal(t, profile.RankName, got.RankName)
	assert.Equal(t, profile.RankLevel, got.RankLevel)
	assert.True(t, profile.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, backend.SubmitStatistic(ctx, "p1", StatOfficerPoints, 640))
	assert.Equal(t, 640, stub.stats["p1/"+StatOfficerPoints])
}

func TestHostedBackendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: every request now fails to connect

	backend := NewHostedBackend(srv.URL, "T1234", "s3cret")
	_, err := backend.GetProfile(context.Background(), "p1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
