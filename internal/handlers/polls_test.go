package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/polls"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// fakePollStore implements polls.Store in memory.
type fakePollStore struct {
	polls map[string]*models.Poll
	votes map[string]map[string]string // pollID -> voter -> choice
}

func newFakePollStore() *fakePollStore {
	return &fakePollStore{
		polls: make(map[string]*models.Poll),
		votes: make(map[string]map[string]string),
	}
}

func (f *fakePollStore) CreatePoll(ctx context.Context, question string, options []string, week int, createdBy string, closesAt time.Time) (*models.Poll, error) {
	poll := &models.Poll{
		ID:        uuid.New().String(),
		Question:  question,
		Options:   options,
		Week:      week,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		ClosesAt:  closesAt,
	}
	f.polls[poll.ID] = poll
	return poll, nil
}

func (f *fakePollStore) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	poll, ok := f.polls[id]
	if !ok {
		return nil, polls.ErrPollNotFound
	}
	return poll, nil
}

func (f *fakePollStore) ListPolls(ctx context.Context, week int) ([]models.Poll, error) {
	var list []models.Poll
	for _, p := range f.polls {
		if week == 0 || p.Week == week {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (f *fakePollStore) Vote(ctx context.Context, pollID, voter, choice string) error {
	poll, ok := f.polls[pollID]
	if !ok {
		return polls.ErrPollNotFound
	}
	valid := false
	for _, opt := range poll.Options {
		if opt == choice {
			valid = true
			break
		}
	}
	if !valid {
		return polls.ErrInvalidChoice
	}
	if f.votes[pollID] == nil {
		f.votes[pollID] = make(map[string]string)
	}
	f.votes[pollID][voter] = choice
	return nil
}

func (f *fakePollStore) Results(ctx context.Context, pollID string) (*models.PollResult, error) {
	poll, ok := f.polls[pollID]
	if !ok {
		return nil, polls.ErrPollNotFound
	}
	result := &models.PollResult{PollID: pollID, Question: poll.Question, Counts: make(map[string]int)}
	for _, choice := range f.votes[pollID] {
		result.Counts[choice]++
		result.TotalVotes++
	}
	return result, nil
}

func (f *fakePollStore) Ping(ctx context.Context) error { return nil }
func (f *fakePollStore) Close() error                   { return nil }

func pollsRouter(h *PollsHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/polls", h.CreatePoll)
	r.Get("/polls", h.ListPolls)
	r.Get("/polls/{pollID}", h.GetPoll)
	r.Post("/polls/{pollID}/votes", h.Vote)
	r.Get("/polls/{pollID}/results", h.Results)
	return r
}

func TestCreatePoll(t *testing.T) {
	store := newFakePollStore()
	router := pollsRouter(NewPollsHandler(store))

	body := `{"question":"Who wins the Bandits matchup?","options":["Bandits","Kids"],"week":4,"created_by":"commish"}`
	req := httptest.NewRequest(http.MethodPost, "/polls", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var poll models.Poll
	if err := json.NewDecoder(rec.Body).Decode(&poll); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if poll.ID == "" || poll.Question == "" || len(poll.Options) != 2 {
		t.Errorf("poll = %+v", poll)
	}
}

func TestCreatePoll_Validation(t *testing.T) {
	router := pollsRouter(NewPollsHandler(newFakePollStore()))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"question":`},
		{"missing question", `{"options":["a","b"]}`},
		{"one option", `{"question":"q","options":["only"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/polls", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestVoteAndResults(t *testing.T) {
	store := newFakePollStore()
	router := pollsRouter(NewPollsHandler(store))

	poll, err := store.CreatePoll(context.Background(), "Best ice of week 4?", []string{"Lamb", "Kelce"}, 4, "commish", time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	vote := func(voter, choice string) int {
		body := `{"voter":"` + voter + `","choice":"` + choice + `"}`
		req := httptest.NewRequest(http.MethodPost, "/polls/"+poll.ID+"/votes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := vote("alice", "Lamb"); code != http.StatusNoContent {
		t.Fatalf("vote status = %d, want 204", code)
	}
	if code := vote("bob", "Lamb"); code != http.StatusNoContent {
		t.Fatalf("vote status = %d, want 204", code)
	}
	if code := vote("carol", "Kelce"); code != http.StatusNoContent {
		t.Fatalf("vote status = %d, want 204", code)
	}
	// Revoting replaces the earlier choice rather than double counting.
	if code := vote("carol", "Lamb"); code != http.StatusNoContent {
		t.Fatalf("revote status = %d, want 204", code)
	}
	if code := vote("dave", "Mahomes"); code != http.StatusBadRequest {
		t.Errorf("invalid choice status = %d, want 400", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/polls/"+poll.ID+"/results", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("results status = %d, want 200", rec.Code)
	}
	var result models.PollResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding results: %v", err)
	}
	if result.TotalVotes != 3 || result.Counts["Lamb"] != 3 || result.Counts["Kelce"] != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestVote_PollNotFound(t *testing.T) {
	router := pollsRouter(NewPollsHandler(newFakePollStore()))

	req := httptest.NewRequest(http.MethodPost, "/polls/"+uuid.New().String()+"/votes",
		strings.NewReader(`{"voter":"alice","choice":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetPoll_NotFound(t *testing.T) {
	router := pollsRouter(NewPollsHandler(newFakePollStore()))

	req := httptest.NewRequest(http.MethodGet, "/polls/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListPolls_WeekFilter(t *testing.T) {
	store := newFakePollStore()
	router := pollsRouter(NewPollsHandler(store))

	store.CreatePoll(context.Background(), "week 3 poll", []string{"a", "b"}, 3, "", time.Time{})
	store.CreatePoll(context.Background(), "week 4 poll", []string{"a", "b"}, 4, "", time.Time{})

	req := httptest.NewRequest(http.MethodGet, "/polls?week=4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Count int           `json:"count"`
		Polls []models.Poll `json:"polls"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || resp.Polls[0].Week != 4 {
		t.Errorf("resp = %+v", resp)
	}
}
