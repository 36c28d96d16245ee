// Package yahoo is the client for the Yahoo Fantasy Sports API, the league
// settings and scoreboard feeds behind every fantasy-facing surface.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// Credentials holds the OAuth2 material for the Yahoo Fantasy API.
// Access tokens are short-lived; the token source refreshes them from the
// long-lived refresh token transparently.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
}

// Client handles Yahoo Fantasy API requests for one league.
type Client struct {
	baseURL    string
	leagueKey  string
	httpClient *http.Client
}

// New creates a client for the given league. When creds has no refresh
// token the client runs unauthenticated, which only works against test
// servers.
func New(baseURL, leagueKey string, creds Credentials) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}

	if creds.RefreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: creds.TokenURL},
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
		httpClient = oauth2.NewClient(ctx, src)
		httpClient.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		leagueKey:  leagueKey,
		httpClient: httpClient,
	}
}

// LeagueKey returns the league this client is scoped to.
func (c *Client) LeagueKey() string {
	return c.leagueKey
}

// CurrentWeek returns the league's active week from the settings feed.
// A week of 0 with nil error means the feed did not report one.
func (c *Client) CurrentWeek(ctx context.Context) (int, error) {
	meta, _, err := c.fetchLeague(ctx, fmt.Sprintf("/league/%s/settings", c.leagueKey))
	if err != nil {
		return 0, err
	}
	return int(meta.CurrentWeek), nil
}

// Scoreboard fetches the matchup scoreboard for a week. Week 0 requests
// whatever the feed considers current.
func (c *Client) Scoreboard(ctx context.Context, week int) (*models.Scoreboard, error) {
	path := fmt.Sprintf("/league/%s/scoreboard", c.leagueKey)
	if week > 0 {
		path = fmt.Sprintf("%s;week=%d", path, week)
	}
	meta, sections, err := c.fetchLeague(ctx, path)
	if err != nil {
		return nil, err
	}
	return normalizeScoreboard(meta, sections)
}

// Standings fetches the league standings.
func (c *Client) Standings(ctx context.Context) ([]models.TeamStanding, error) {
	_, sections, err := c.fetchLeague(ctx, fmt.Sprintf("/league/%s/standings", c.leagueKey))
	if err != nil {
		return nil, err
	}
	return normalizeStandings(sections)
}

// Roster fetches one fantasy team's lineup with points for a week.
func (c *Client) Roster(ctx context.Context, teamKey string, week int) (*models.Roster, error) {
	path := fmt.Sprintf("/team/%s/roster;week=%d/players/stats", teamKey, week)
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(raw.FantasyContent.Team) == 0 {
		return nil, fmt.Errorf("team section missing")
	}
	return normalizeRoster(raw.FantasyContent.Team, week)
}

// DraftResults fetches the league's draft board.
func (c *Client) DraftResults(ctx context.Context) ([]models.DraftPick, error) {
	_, sections, err := c.fetchLeague(ctx, fmt.Sprintf("/league/%s/draftresults", c.leagueKey))
	if err != nil {
		return nil, err
	}
	return normalizeDraftResults(sections)
}

// Players fetches league player records by player key.
func (c *Client) Players(ctx context.Context, playerKeys []string) ([]models.Player, error) {
	if len(playerKeys) == 0 {
		return nil, nil
	}
	path := fmt.Sprintf("/league/%s/players;player_keys=%s",
		c.leagueKey, url.PathEscape(strings.Join(playerKeys, ",")))
	_, sections, err := c.fetchLeague(ctx, path)
	if err != nil {
		return nil, err
	}
	return normalizePlayers(sections)
}

// fetchLeague fetches a league-scoped resource and splits the envelope.
func (c *Client) fetchLeague(ctx context.Context, path string) (rawLeagueMeta, objectMap, error) {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return rawLeagueMeta{}, nil, err
	}
	if len(raw.FantasyContent.League) == 0 {
		return rawLeagueMeta{}, nil, fmt.Errorf("league section missing")
	}
	return decodeLeague(raw.FantasyContent.League)
}

// fetch makes an authenticated GET and decodes the JSON envelope.
func (c *Client) fetch(ctx context.Context, path string) (*rawResponse, error) {
	url := c.baseURL + path + "?format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fantasy feed error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &raw, nil
}
