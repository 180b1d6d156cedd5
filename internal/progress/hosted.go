package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// Profile attribute names in the hosted backend's key/value store. The set
// is fixed; unknown attributes are ignored on read.
const (
	attrTotalPoints = "totalPoints"
	attrCompleted   = "completedMissions"
	attrRank        = "rank"
	attrRankLevel   = "rankLevel"
	attrCreatedAt   = "createdAt"
	attrUpdatedAt   = "updatedAt"
)

// HostedBackend talks to the hosted game backend's title data and
// statistics APIs. Requests authenticate with the title's secret key.
type HostedBackend struct {
	baseURL   string
	titleID   string
	secretKey string
	client    *http.Client
}

// NewHostedBackend creates a backend client for one title.
func NewHostedBackend(baseURL, titleID, secretKey string) *HostedBackend {
	return &HostedBackend{
		baseURL:   baseURL,
		titleID:   titleID,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type attributesEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Attributes map[string]string `json:"attributes"`
	} `json:"data"`
}

type leaderboardEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Entries []academy.LeaderboardEntry `json:"entries"`
	} `json:"data"`
}

// GetProfile reads the player's attribute set and decodes it into a
// profile. A player with no stored attributes is ErrNotFound.
func (b *HostedBackend) GetProfile(ctx context.Context, playerID string) (*academy.PlayerProfile, error) {
	var env attributesEnvelope
	if err := b.get(ctx, b.playerDataURL(playerID), &env); err != nil {
		return nil, err
	}
	if !env.Success || len(env.Data.Attributes) == 0 {
		return nil, ErrNotFound
	}
	return profileFromAttributes(playerID, env.Data.Attributes), nil
}

// PutProfile writes the full attribute set for the player.
func (b *HostedBackend) PutProfile(ctx context.Context, profile *academy.PlayerProfile) error {
	payload := map[string]any{
		"attributes": attributesFromProfile(profile),
	}
	return b.post(ctx, b.playerDataURL(profile.PlayerID), payload)
}

// SubmitStatistic records a named statistic value for leaderboard ranking.
func (b *HostedBackend) SubmitStatistic(ctx context.Context, playerID, stat string, value int) error {
	payload := map[string]any{
		"playerId":  playerID,
		"statistic": stat,
		"value":     value,
	}
	u := fmt.Sprintf("%s/titles/%s/statistics", b.baseURL, url.PathEscape(b.titleID))
	return b.post(ctx, u, payload)
}

// Leaderboard reads the ranked entries for a statistic, best first.
func (b *HostedBackend) Leaderboard(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error) {
	u := fmt.Sprintf("%s/titles/%s/statistics/%s?max=%d",
		b.baseURL, url.PathEscape(b.titleID), url.PathEscape(stat), max)
	var env leaderboardEnvelope
	if err := b.get(ctx, u, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, ErrNotFound
	}
	return env.Data.Entries, nil
}

func (b *HostedBackend) playerDataURL(playerID string) string {
	return fmt.Sprintf("%s/titles/%s/players/%s/data",
		b.baseURL, url.PathEscape(b.titleID), url.PathEscape(playerID))
}

func (b *HostedBackend) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	b.sign(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func (b *HostedBackend) post(ctx context.Context, u string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	b.sign(req)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("backend status %d", resp.StatusCode)
	}
	return nil
}

func (b *HostedBackend) sign(req *http.Request) {
	req.Header.Set("X-Title-Id", b.titleID)
	req.Header.Set("X-Secret-Key", b.secretKey)
}

func profileFromAttributes(playerID string, attrs map[string]string) *academy.PlayerProfile {
	p := &academy.PlayerProfile{PlayerID: playerID}
	p.TotalPoints, _ = strconv.Atoi(attrs[attrTotalPoints])
	p.Completed, _ = strconv.Atoi(attrs[attrCompleted])
	p.RankLevel, _ = strconv.Atoi(attrs[attrRankLevel])
	p.RankName = attrs[attrRank]
	if t, err := time.Parse(time.RFC3339, attrs[attrCreatedAt]); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, attrs[attrUpdatedAt]); err == nil {
		p.UpdatedAt = t
	}
	return p
}

func attributesFromProfile(p *academy.PlayerProfile) map[string]string {
	return map[string]string{
		attrTotalPoints: strconv.Itoa(p.TotalPoints),
		attrCompleted:   strconv.Itoa(p.Completed),
		attrRank:        p.RankName,
		attrRankLevel:   strconv.Itoa(p.RankLevel),
		attrCreatedAt:   p.CreatedAt.Format(time.RFC3339),
		attrUpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}
