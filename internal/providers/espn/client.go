// Package espn is a thin client for ESPN's public NFL scoreboard, which the
// schedule gate and the Ice tracker use as the schedule/status feed.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

const sportPath = "football/nfl"

// Client handles schedule feed requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	loc        *time.Location
}

// New creates a new schedule feed client. Event start times are converted
// into loc so the gate's window math runs in league-local time.
func New(baseURL string, loc *time.Location) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: "Mozilla/5.0 (compatible; SidelineBot/1.0)",
		loc:       loc,
	}
}

// EventsForDate fetches the NFL games scheduled on the given calendar date.
func (c *Client) EventsForDate(ctx context.Context, date time.Time) ([]models.ScheduleEvent, error) {
	url := fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, sportPath, date.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("schedule feed error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var sb scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	events := make([]models.ScheduleEvent, 0, len(sb.Events))
	for _, raw := range sb.Events {
		events = append(events, c.normalizeEvent(raw))
	}
	return events, nil
}

// normalizeEvent isolates all raw-shape access for one event.
func (c *Client) normalizeEvent(raw rawEvent) models.ScheduleEvent {
	ev := models.ScheduleEvent{
		EventID:   raw.ID,
		Name:      raw.Name,
		ShortName: raw.ShortName,
		State:     raw.Status.Type.State,
		Completed: raw.Status.Type.Completed,
	}

	// Prefer the short detail ("Q2 5:31") over the description ("In Progress")
	ev.StatusText = raw.Status.Type.ShortDetail
	if ev.StatusText == "" {
		ev.StatusText = raw.Status.Type.Description
	}

	// A missing or malformed date leaves LocalStart zero; the gate skips
	// those events rather than failing the whole evaluation.
	if t, err := time.Parse("2006-01-02T15:04Z", raw.Date); err == nil {
		ev.LocalStart = t.In(c.loc)
	} else if t, err := time.Parse(time.RFC3339, raw.Date); err == nil {
		ev.LocalStart = t.In(c.loc)
	}

	for _, comp := range raw.Competitions {
		for _, competitor := range comp.Competitors {
			switch competitor.HomeAway {
			case "home":
				ev.HomeAbbr = competitor.Team.Abbreviation
			case "away":
				ev.AwayAbbr = competitor.Team.Abbreviation
			}
		}
	}
	return ev
}
