package winprob_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/store"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/winprob"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// fakeFeed implements winprob.ScoringFeed.
type fakeFeed struct {
	week       int
	weekErr    error
	scoreboard *models.Scoreboard
	sbErr      error
}

func (f *fakeFeed) CurrentWeek(ctx context.Context) (int, error) {
	return f.week, f.weekErr
}

func (f *fakeFeed) Scoreboard(ctx context.Context, week int) (*models.Scoreboard, error) {
	return f.scoreboard, f.sbErr
}

// memStore implements store.SeriesStore in memory via ApplyAppend.
type memStore struct {
	docs      map[string]*models.SeriesDocument
	appendErr error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]*models.SeriesDocument)}
}

func (m *memStore) Get(ctx context.Context, season string, week int, matchupID string) (*models.SeriesDocument, error) {
	doc, ok := m.docs[models.SeriesKey(season, week, matchupID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (m *memStore) List(ctx context.Context, season string, week int) ([]*models.SeriesDocument, error) {
	var docs []*models.SeriesDocument
	for _, doc := range m.docs {
		if doc.Season == season && doc.Week == week {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *memStore) Append(ctx context.Context, season string, week int, matchupID string,
	identity [2]models.TeamIdentity, point models.SeriesPoint, final bool) (*models.SeriesDocument, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	key := models.SeriesKey(season, week, matchupID)
	doc := store.ApplyAppend(m.docs[key], season, week, matchupID, identity, point, final)
	m.docs[key] = doc
	return doc, nil
}

// recordingPublisher captures published updates.
type recordingPublisher struct {
	updates []models.WinProbUpdate
}

func (p *recordingPublisher) PublishUpdate(ctx context.Context, update models.WinProbUpdate) error {
	p.updates = append(p.updates, update)
	return nil
}

func midweekScoreboard(status models.WeekStatus) *models.Scoreboard {
	team := func(name string, pct float64) models.ParticipantState {
		return models.ParticipantState{
			TeamIdentity:      models.TeamIdentity{Name: name, Logo: "https://img.example/" + name + ".png"},
			WinProbabilityPct: pct,
		}
	}
	return &models.Scoreboard{
		Season: "2025",
		Week:   4,
		Status: status,
		Matchups: []models.Matchup{
			{MatchupID: "0", Week: 4, Status: status, Team1: team("a", 62), Team2: team("b", 38)},
			{MatchupID: "1", Week: 4, Status: status, Team1: team("c", 50), Team2: team("d", 50)},
		},
	}
}

func TestFetch_WeekInProgress(t *testing.T) {
	f := winprob.NewFetcher(&fakeFeed{week: 4, scoreboard: midweekScoreboard(models.WeekMidEvent)})

	result, err := f.Fetch(context.Background(), time.Date(2025, 9, 25, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Season != "2025" || result.Week != 4 {
		t.Errorf("season/week = %s/%d, want 2025/4", result.Season, result.Week)
	}
	if len(result.Snapshots) != 2 {
		t.Fatalf("len(Snapshots) = %d, want 2", len(result.Snapshots))
	}
	if result.Snapshots[0].Team1.WinProbabilityPct != 62 {
		t.Errorf("Team1 pct = %v, want 62", result.Snapshots[0].Team1.WinProbabilityPct)
	}
	if result.Snapshots[0].Final {
		t.Error("Final = true for midevent matchup, want false")
	}
}

func TestFetch_WeekNotStarted(t *testing.T) {
	f := winprob.NewFetcher(&fakeFeed{week: 4, scoreboard: midweekScoreboard(models.WeekPreEvent)})

	result, err := f.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Snapshots) != 0 {
		t.Errorf("len(Snapshots) = %d for preevent week, want 0", len(result.Snapshots))
	}
}

func TestFetch_NoActiveWeek(t *testing.T) {
	f := winprob.NewFetcher(&fakeFeed{week: 0})

	result, err := f.Fetch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Week != 0 || len(result.Snapshots) != 0 {
		t.Errorf("got week=%d snapshots=%d, want idle result", result.Week, len(result.Snapshots))
	}
}

func TestFetch_ScoreboardError(t *testing.T) {
	f := winprob.NewFetcher(&fakeFeed{week: 4, sbErr: errors.New("upstream down")})

	if _, err := f.Fetch(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when scoreboard feed is unreachable")
	}
}

func TestAppendAll_OnePointPerMatchup(t *testing.T) {
	mem := newMemStore()
	pub := &recordingPublisher{}
	a := winprob.NewAppender(mem, pub, time.UTC)
	f := winprob.NewFetcher(&fakeFeed{week: 4, scoreboard: midweekScoreboard(models.WeekMidEvent)})

	now := time.Date(2025, 9, 25, 18, 0, 0, 0, time.UTC)
	result, err := f.Fetch(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.AppendAll(context.Background(), result, now); got != 2 {
		t.Errorf("AppendAll() = %d, want 2", got)
	}

	doc, err := mem.Get(context.Background(), "2025", 4, "0")
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	if len(doc.Points) != 1 {
		t.Fatalf("len(Points) = %d, want 1", len(doc.Points))
	}
	if doc.Points[0].Team1Pct != 62 || doc.Points[0].Team2Pct != 38 {
		t.Errorf("point = %+v, want 62/38", doc.Points[0])
	}
	if want := now.Format(models.PointLabelLayout); doc.Points[0].Label != want {
		t.Errorf("Label = %q, want %q", doc.Points[0].Label, want)
	}
	if len(pub.updates) != 2 {
		t.Errorf("published %d updates, want 2", len(pub.updates))
	}
}

func TestAppendAll_SequentialCyclesGrowSeries(t *testing.T) {
	mem := newMemStore()
	a := winprob.NewAppender(mem, nil, time.UTC)
	f := winprob.NewFetcher(&fakeFeed{week: 4, scoreboard: midweekScoreboard(models.WeekMidEvent)})

	t1 := time.Date(2025, 9, 25, 18, 0, 0, 0, time.UTC)
	t2 := t1.Add(3 * time.Minute)

	for _, now := range []time.Time{t1, t2} {
		result, err := f.Fetch(context.Background(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a.AppendAll(context.Background(), result, now)
	}

	doc, err := mem.Get(context.Background(), "2025", 4, "0")
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	if len(doc.Points) != 2 {
		t.Fatalf("len(Points) = %d after two cycles, want 2", len(doc.Points))
	}
	if !doc.Points[0].CapturedAt.Equal(t1) || !doc.Points[1].CapturedAt.Equal(t2) {
		t.Errorf("points out of call order: %v, %v", doc.Points[0].CapturedAt, doc.Points[1].CapturedAt)
	}
}

func TestAppendAll_StoreFailureDoesNotPanic(t *testing.T) {
	mem := newMemStore()
	mem.appendErr = errors.New("write refused")
	a := winprob.NewAppender(mem, nil, time.UTC)
	f := winprob.NewFetcher(&fakeFeed{week: 4, scoreboard: midweekScoreboard(models.WeekMidEvent)})

	now := time.Now()
	result, err := f.Fetch(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.AppendAll(context.Background(), result, now); got != 0 {
		t.Errorf("AppendAll() = %d with failing store, want 0", got)
	}
}
