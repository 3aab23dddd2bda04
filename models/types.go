package models

import "github.com/danielhkuo/lunch-pick/daykey"

// Default vote budget per client per voting day
const DefaultMaxVotes = 3

// Cuisine shown when the candidate source has none
const UnknownCuisine = "Keine Angabe"

// Voting modes
const (
	ModeVoting  = "voting"
	ModeResults = "results"
)

// Domain types

// Candidate is a lunch venue. Tally is derived from the ledger on every load.
type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Link     string `json:"link,omitempty"`
	Price    string `json:"price,omitempty"`
	Distance string `json:"distance,omitempty"`
	Tally    int    `json:"tally"`
}

// VoteEvent is one vote unit in the ledger. Casting two votes for a candidate
// produces two events.
type VoteEvent struct {
	ID           string     `json:"id,omitempty"`
	CandidateID  string     `json:"candidate_id"`
	VotingDay    daykey.Key `json:"voting_day"`
	SubmissionID string     `json:"submission_id,omitempty"`
}

// Allocation maps candidate id -> number of votes (> 0) for the current session
type Allocation map[string]int

// Total returns the number of vote units in the allocation.
func (a Allocation) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// Request types

type AddCandidateRequest struct {
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine,omitempty"`
	Link     string `json:"link,omitempty"`
	Price    string `json:"price,omitempty"`
	Distance string `json:"distance,omitempty"`
}

// Response types

type RegisterClientResponse struct {
	ClientID string `json:"client_id"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

// BallotCandidate is a candidate as seen by a client. Tally is nil while the
// client has not voted today.
type BallotCandidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Link     string `json:"link,omitempty"`
	Price    string `json:"price,omitempty"`
	Distance string `json:"distance,omitempty"`
	MyVotes  int    `json:"my_votes"`
	Tally    *int   `json:"tally,omitempty"`
	Leading  bool   `json:"leading,omitempty"`
}

type Ballot struct {
	VotingDay  daykey.Key        `json:"voting_day"`
	Mode       string            `json:"mode"`
	HasVoted   bool              `json:"has_voted"`
	MaxVotes   int               `json:"max_votes"`
	Used       int               `json:"used"`
	Remaining  int               `json:"remaining"`
	Submitting bool              `json:"submitting"`
	Candidates []BallotCandidate `json:"candidates"`
}

// PodiumEntry is one of the top places on the leaderboard.
type PodiumEntry struct {
	Rank      int       `json:"rank"`
	Place     string    `json:"place"`
	Candidate Candidate `json:"candidate"`
}

type Results struct {
	VotingDay  daykey.Key    `json:"voting_day"`
	TotalVotes int           `json:"total_votes"`
	Rankings   []Candidate   `json:"rankings"`
	Podium     []PodiumEntry `json:"podium"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
