// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/models"
)

// PodiumSize is the number of places shown on the leaderboard
const PodiumSize = 3

// Aggregate returns a copy of candidates with tallies counted from the ledger
// entries of day, sorted by tally descending (stable).
func Aggregate(candidates []models.Candidate, entries []models.VoteEvent, day daykey.Key) []models.Candidate {
	result := make([]models.Candidate, len(candidates))
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		c.Tally = 0
		result[i] = c
		index[c.ID] = i
	}

	for _, e := range entries {
		if e.VotingDay != day {
			continue
		}
		i, ok := index[e.CandidateID]
		if !ok {
			continue
		}
		result[i].Tally++
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Tally > result[b].Tally
	})

	return result
}

// Total sums the tallies of candidates.
func Total(candidates []models.Candidate) int {
	total := 0
	for _, c := range candidates {
		total += c.Tally
	}
	return total
}

// Leading returns the ids of the candidates holding the highest tally.
// Nobody leads while no votes have been cast.
func Leading(candidates []models.Candidate) map[string]bool {
	highest := 0
	for _, c := range candidates {
		if c.Tally > highest {
			highest = c.Tally
		}
	}

	leaders := make(map[string]bool)
	if highest == 0 {
		return leaders
	}
	for _, c := range candidates {
		if c.Tally == highest {
			leaders[c.ID] = true
		}
	}
	return leaders
}

// Podium returns up to n candidates with at least one vote, best first.
func Podium(candidates []models.Candidate, n int) []models.PodiumEntry {
	voted := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Tally > 0 {
			voted = append(voted, c)
		}
	}

	sort.SliceStable(voted, func(a, b int) bool {
		return voted[a].Tally > voted[b].Tally
	})

	if len(voted) > n {
		voted = voted[:n]
	}

	podium := make([]models.PodiumEntry, 0, len(voted))
	for i, c := range voted {
		podium = append(podium, models.PodiumEntry{
			Rank:      i + 1,
			Place:     humanize.Ordinal(i + 1),
			Candidate: c,
		})
	}
	return podium
}
