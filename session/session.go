// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/lunch-pick/budget"
	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/gate"
	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
	"github.com/danielhkuo/lunch-pick/submit"
	"github.com/danielhkuo/lunch-pick/tally"
)

var (
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrAlreadyVoted         = errors.New("already voted today")
	ErrUnknownCandidate     = errors.New("unknown candidate")
	ErrNotLoaded            = errors.New("ballot not loaded")
	ErrResultsSealed        = errors.New("results are hidden until you vote")
	ErrResultsUnavailable   = errors.New("votes submitted but results could not be loaded")
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Candidates store.CandidateSource
	Ledger     store.Ledger
	Flags      store.FlagStore
	Now        func() time.Time
	MaxVotes   int
}

// Session is one client's voting state for the current day.
type Session struct {
	clientID string
	deps     Deps
	gate     *gate.Gate
	pipeline *submit.Pipeline

	mu         sync.Mutex
	budget     *budget.Budget
	loaded     bool
	day        daykey.Key
	votedDay   daykey.Key
	candidates []models.Candidate // source order
	ranked     []models.Candidate // tally order
	submitting bool
}

func New(deps Deps, clientID string) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Session{
		clientID: clientID,
		deps:     deps,
		gate:     gate.New(deps.Flags),
		pipeline: submit.New(deps.Ledger),
		budget:   budget.New(deps.MaxVotes),
	}
}

func (s *Session) ClientID() string {
	return s.clientID
}

func (s *Session) today() daykey.Key {
	return daykey.Today(s.deps.Now())
}

// hasVoted must be called with mu held.
func (s *Session) hasVoted(today daykey.Key) bool {
	return s.votedDay != "" && s.votedDay == today
}

// Load pulls candidates and the ledger (in that order), recomputes today's
// tallies and reads the voted flag. On failure the session is left unloaded
// so no partial tallies are ever shown.
func (s *Session) Load(ctx context.Context) error {
	today := s.today()

	candidates, ledger, voted, err := s.fetch(ctx, today)
	if err != nil {
		s.mu.Lock()
		s.loaded = false
		s.candidates = nil
		s.ranked = nil
		s.mu.Unlock()
		return err
	}

	ranked := tally.Aggregate(candidates, ledger, today)
	counts := make(map[string]int, len(ranked))
	for _, c := range ranked {
		counts[c.ID] = c.Tally
	}
	for i := range candidates {
		candidates[i].Tally = counts[candidates[i].ID]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.day = today
	s.candidates = candidates
	s.ranked = ranked
	if voted {
		s.votedDay = today
	}
	return nil
}

// EnsureLoaded loads the session unless the last Load succeeded.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if loaded {
		return nil
	}
	return s.Load(ctx)
}

func (s *Session) fetch(ctx context.Context, today daykey.Key) ([]models.Candidate, []models.VoteEvent, bool, error) {
	candidates, err := s.deps.Candidates.FetchCandidates(ctx)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load candidates: %w", err)
	}

	ledger, err := s.deps.Ledger.FetchLedger(ctx)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load votes: %w", err)
	}

	voted, err := s.gate.Check(ctx, s.clientID, today)
	if err != nil {
		return nil, nil, false, err
	}

	return candidates, ledger, voted, nil
}

// Increment adds a vote for candidateID. Over-budget increments are ignored.
func (s *Session) Increment(candidateID string) error {
	return s.mutate(candidateID, s.budget.Increment)
}

// Decrement removes a vote from candidateID. Removing from an unallocated
// candidate is ignored.
func (s *Session) Decrement(candidateID string) error {
	return s.mutate(candidateID, s.budget.Decrement)
}

func (s *Session) mutate(candidateID string, apply func(string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkVotingLocked(); err != nil {
		return err
	}
	if !s.knownLocked(candidateID) {
		return ErrUnknownCandidate
	}

	apply(candidateID)
	return nil
}

func (s *Session) checkVotingLocked() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.submitting {
		return ErrSubmissionInProgress
	}
	if s.hasVoted(s.today()) {
		return ErrAlreadyVoted
	}
	return nil
}

func (s *Session) knownLocked(candidateID string) bool {
	for _, c := range s.candidates {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}

// Submit writes the allocation to the ledger, marks the client as voted,
// clears the allocation and reloads the tallies. Only one submission runs at
// a time; a concurrent call fails with ErrSubmissionInProgress.
func (s *Session) Submit(ctx context.Context) (models.Results, error) {
	// Once started, the ledger writes and the voted flag must land together
	// even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	if err := s.checkVotingLocked(); err != nil {
		s.mu.Unlock()
		return models.Results{}, err
	}
	if s.budget.Used() == 0 {
		s.mu.Unlock()
		return models.Results{}, submit.ErrEmptyAllocation
	}
	s.submitting = true
	alloc := s.budget.Allocation()
	today := s.today()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	receipt, err := s.pipeline.Submit(ctx, alloc, today)
	if err != nil {
		return models.Results{}, err
	}

	slog.Info("votes submitted",
		"client_id", s.clientID,
		"submission_id", receipt.SubmissionID,
		"votes", receipt.Events,
		"batches", receipt.Batches,
	)

	// The votes are committed; a lost flag must not reopen the ballot.
	if err := s.gate.MarkVoted(ctx, s.clientID, today); err != nil {
		slog.Error("failed to persist voted flag", "client_id", s.clientID, "error", err)
	}

	s.mu.Lock()
	s.votedDay = today
	s.budget.Reset()
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		return models.Results{}, fmt.Errorf("%w: %w", ErrResultsUnavailable, err)
	}

	return s.Results()
}

// View returns the ballot as the client may see it. Tallies and ranking are
// withheld until the client has voted today.
func (s *Session) View() (models.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.Ballot{}, ErrNotLoaded
	}

	today := s.today()
	voted := s.hasVoted(today)

	ballot := models.Ballot{
		VotingDay:  today,
		Mode:       models.ModeVoting,
		HasVoted:   voted,
		MaxVotes:   s.budget.Max(),
		Used:       s.budget.Used(),
		Remaining:  s.budget.Remaining(),
		Submitting: s.submitting,
		Candidates: make([]models.BallotCandidate, 0, len(s.candidates)),
	}

	source := s.candidates
	var leaders map[string]bool
	if voted {
		ballot.Mode = models.ModeResults
		source = s.ranked
		leaders = tally.Leading(s.ranked)
	}

	for _, c := range source {
		bc := models.BallotCandidate{
			ID:       c.ID,
			Name:     c.Name,
			Cuisine:  c.Cuisine,
			Link:     c.Link,
			Price:    c.Price,
			Distance: c.Distance,
			MyVotes:  s.budget.Count(c.ID),
		}
		if voted {
			n := c.Tally
			bc.Tally = &n
			bc.Leading = leaders[c.ID]
		}
		ballot.Candidates = append(ballot.Candidates, bc)
	}

	return ballot, nil
}

// Results returns today's rankings once the client has voted.
func (s *Session) Results() (models.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return models.Results{}, ErrNotLoaded
	}
	if !s.hasVoted(s.today()) {
		return models.Results{}, ErrResultsSealed
	}

	rankings := make([]models.Candidate, len(s.ranked))
	copy(rankings, s.ranked)
	return models.Results{
		VotingDay:  s.day,
		TotalVotes: tally.Total(rankings),
		Rankings:   rankings,
		Podium:     tally.Podium(rankings, tally.PodiumSize),
	}, nil
}
