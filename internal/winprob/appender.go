package winprob

import (
	"context"
	"log"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
	"github.com/mgaribay43/bok-choy-league-sub001/internal/store"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// Publisher announces an appended point to downstream consumers.
type Publisher interface {
	PublishUpdate(ctx context.Context, update models.WinProbUpdate) error
}

// Appender durably records one new sample per matchup. Per-matchup writes
// are independent: one failed matchup does not stop the rest.
type Appender struct {
	store     store.SeriesStore
	publisher Publisher // optional
	loc       *time.Location
}

// NewAppender creates a series appender. publisher may be nil.
func NewAppender(seriesStore store.SeriesStore, publisher Publisher, loc *time.Location) *Appender {
	return &Appender{
		store:     seriesStore,
		publisher: publisher,
		loc:       loc,
	}
}

// AppendAll appends one point per snapshot, capturing them all at the same
// timestamp. Returns how many appends succeeded.
func (a *Appender) AppendAll(ctx context.Context, result *FetchResult, now time.Time) int {
	captured := now.In(a.loc)
	appended := 0

	for _, snap := range result.Snapshots {
		point := models.SeriesPoint{
			CapturedAt: captured,
			Label:      captured.Format(models.PointLabelLayout),
			Team1Pct:   snap.Team1.WinProbabilityPct,
			Team2Pct:   snap.Team2.WinProbabilityPct,
		}
		identity := [2]models.TeamIdentity{snap.Team1.TeamIdentity, snap.Team2.TeamIdentity}

		doc, err := a.store.Append(ctx, result.Season, result.Week, snap.MatchupID, identity, point, snap.Final)
		if err != nil {
			log.Printf("[winprob] append failed for matchup %s: %v", snap.MatchupID, err)
			metrics.AppendErrors.Inc()
			continue
		}
		appended++
		metrics.PointsAppended.Inc()

		if a.publisher != nil {
			update := models.WinProbUpdate{
				Season:     result.Season,
				Week:       result.Week,
				MatchupID:  snap.MatchupID,
				Team1:      doc.Team1.Name,
				Team2:      doc.Team2.Name,
				Team1Pct:   point.Team1Pct,
				Team2Pct:   point.Team2Pct,
				Final:      doc.Final,
				CapturedAt: captured,
			}
			if err := a.publisher.PublishUpdate(ctx, update); err != nil {
				log.Printf("[winprob] publish failed for matchup %s: %v", snap.MatchupID, err)
			}
		}
	}
	return appended
}
