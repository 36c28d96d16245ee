package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/polls"
)

// PollsHandler serves league poll CRUD and voting.
type PollsHandler struct {
	store polls.Store
}

// NewPollsHandler creates the polls handler.
func NewPollsHandler(store polls.Store) *PollsHandler {
	return &PollsHandler{store: store}
}

type createPollRequest struct {
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Week      int       `json:"week"`
	CreatedBy string    `json:"created_by"`
	ClosesAt  time.Time `json:"closes_at"`
}

// CreatePoll creates a new poll.
// POST /api/v1/polls
func (h *PollsHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Question == "" || len(req.Options) < 2 {
		respondError(w, http.StatusBadRequest, "question and at least two options are required", nil)
		return
	}

	poll, err := h.store.CreatePoll(ctx, req.Question, req.Options, req.Week, req.CreatedBy, req.ClosesAt)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create poll", err)
		return
	}
	respondJSON(w, http.StatusCreated, poll)
}

// ListPolls lists polls, optionally filtered by week.
// GET /api/v1/polls?week={n}
func (h *PollsHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.store.ListPolls(ctx, parseIntParam(r, "week", 0))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list polls", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"polls": list, "count": len(list)})
}

// GetPoll returns one poll.
// GET /api/v1/polls/{pollID}
func (h *PollsHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	poll, err := h.store.GetPoll(ctx, chi.URLParam(r, "pollID"))
	if errors.Is(err, polls.ErrPollNotFound) {
		respondError(w, http.StatusNotFound, "poll not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve poll", err)
		return
	}
	respondJSON(w, http.StatusOK, poll)
}

type voteRequest struct {
	Voter  string `json:"voter"`
	Choice string `json:"choice"`
}

// Vote records one voter's choice.
// POST /api/v1/polls/{pollID}/votes
func (h *PollsHandler) Vote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Voter == "" || req.Choice == "" {
		respondError(w, http.StatusBadRequest, "voter and choice are required", nil)
		return
	}

	err := h.store.Vote(ctx, chi.URLParam(r, "pollID"), req.Voter, req.Choice)
	switch {
	case errors.Is(err, polls.ErrPollNotFound):
		respondError(w, http.StatusNotFound, "poll not found", nil)
	case errors.Is(err, polls.ErrInvalidChoice):
		respondError(w, http.StatusBadRequest, "choice is not one of the poll's options", nil)
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to record vote", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// Results returns the vote tally for a poll.
// GET /api/v1/polls/{pollID}/results
func (h *PollsHandler) Results(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.store.Results(ctx, chi.URLParam(r, "pollID"))
	if errors.Is(err, polls.ErrPollNotFound) {
		respondError(w, http.StatusNotFound, "poll not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to tally votes", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
