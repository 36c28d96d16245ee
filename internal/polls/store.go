// Package polls stores league polls and votes in Postgres.
//
// Schema:
//
//	CREATE TABLE polls (
//	    id         UUID PRIMARY KEY,
//	    question   TEXT NOT NULL,
//	    options    TEXT[] NOT NULL,
//	    week       INT NOT NULL DEFAULT 0,
//	    created_by TEXT NOT NULL DEFAULT '',
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    closes_at  TIMESTAMPTZ
//	);
//
//	CREATE TABLE poll_votes (
//	    poll_id  UUID NOT NULL REFERENCES polls(id),
//	    voter    TEXT NOT NULL,
//	    choice   TEXT NOT NULL,
//	    voted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (poll_id, voter)
//	);
package polls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// Sentinel errors callers branch on.
var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidChoice = errors.New("choice is not one of the poll's options")
)

// Store defines poll persistence operations.
type Store interface {
	CreatePoll(ctx context.Context, question string, options []string, week int, createdBy string, closesAt time.Time) (*models.Poll, error)
	GetPoll(ctx context.Context, id string) (*models.Poll, error)
	ListPolls(ctx context.Context, week int) ([]models.Poll, error)
	Vote(ctx context.Context, pollID, voter, choice string) error
	Results(ctx context.Context, pollID string) (*models.PollResult, error)
	Ping(ctx context.Context) error
	Close() error
}

// PostgresStore implements Store on Postgres.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the polls database.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// CreatePoll inserts a new poll and returns it.
func (s *PostgresStore) CreatePoll(ctx context.Context, question string, options []string, week int, createdBy string, closesAt time.Time) (*models.Poll, error) {
	poll := &models.Poll{
		ID:        uuid.New().String(),
		Question:  question,
		Options:   options,
		Week:      week,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		ClosesAt:  closesAt,
	}

	var closes interface{}
	if !closesAt.IsZero() {
		closes = closesAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO polls (id, question, options, week, created_by, created_at, closes_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		poll.ID, poll.Question, pq.Array(poll.Options), poll.Week, poll.CreatedBy, poll.CreatedAt, closes)
	if err != nil {
		return nil, fmt.Errorf("inserting poll: %w", err)
	}
	return poll, nil
}

// GetPoll retrieves one poll by ID.
func (s *PostgresStore) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	var closes sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question, options, week, created_by, created_at, closes_at
		 FROM polls WHERE id = $1`, id).
		Scan(&poll.ID, &poll.Question, pq.Array(&poll.Options), &poll.Week,
			&poll.CreatedBy, &poll.CreatedAt, &closes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying poll: %w", err)
	}
	if closes.Valid {
		poll.ClosesAt = closes.Time
	}
	return &poll, nil
}

// ListPolls returns polls, optionally filtered to one week (0 = all).
func (s *PostgresStore) ListPolls(ctx context.Context, week int) ([]models.Poll, error) {
	query := `SELECT id, question, options, week, created_by, created_at, closes_at
	          FROM polls`
	args := []interface{}{}
	if week > 0 {
		query += ` WHERE week = $1`
		args = append(args, week)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var poll models.Poll
		var closes sql.NullTime
		if err := rows.Scan(&poll.ID, &poll.Question, pq.Array(&poll.Options), &poll.Week,
			&poll.CreatedBy, &poll.CreatedAt, &closes); err != nil {
			return nil, fmt.Errorf("scanning poll: %w", err)
		}
		if closes.Valid {
			poll.ClosesAt = closes.Time
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

// Vote records or replaces one voter's choice.
func (s *PostgresStore) Vote(ctx context.Context, pollID, voter, choice string) error {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}

	valid := false
	for _, opt := range poll.Options {
		if opt == choice {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidChoice
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO poll_votes (poll_id, voter, choice, voted_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (poll_id, voter) DO UPDATE SET choice = EXCLUDED.choice, voted_at = now()`,
		pollID, voter, choice)
	if err != nil {
		return fmt.Errorf("recording vote: %w", err)
	}
	return nil
}

// Results tallies votes per option for one poll.
func (s *PostgresStore) Results(ctx context.Context, pollID string) (*models.PollResult, error) {
	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	result := &models.PollResult{
		PollID:   poll.ID,
		Question: poll.Question,
		Counts:   make(map[string]int, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		result.Counts[opt] = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT choice, COUNT(*) FROM poll_votes WHERE poll_id = $1 GROUP BY choice`, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var choice string
		var count int
		if err := rows.Scan(&choice, &count); err != nil {
			return nil, fmt.Errorf("scanning vote count: %w", err)
		}
		result.Counts[choice] = count
		result.TotalVotes += count
	}
	return result, rows.Err()
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
