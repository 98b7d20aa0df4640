package election

import "math"

// GroupByPosition groups candidates by position display name, preserving
// the server-returned order within each group. The second return value
// lists the group names in first-appearance order so displays stay
// deterministic. Candidates with a missing or malformed position reference
// land in the UnknownPosition group instead of being dropped.
func GroupByPosition(candidates []Candidate) (map[string][]Candidate, []string) {
	groups := make(map[string][]Candidate)
	var names []string

	for _, c := range candidates {
		name := c.PositionName()
		if _, ok := groups[name]; !ok {
			names = append(names, name)
		}
		groups[name] = append(groups[name], c)
	}

	return groups, names
}

// TotalVotes sums the vote counts of a candidate group.
func TotalVotes(candidates []Candidate) int {
	total := 0
	for _, c := range candidates {
		total += c.Votes
	}
	return total
}

// Percentage computes a candidate's share of its position's total votes,
// rounded to one decimal place. A zero total yields 0 for every candidate,
// never NaN.
func Percentage(votes, totalVotesForPosition int) float64 {
	if totalVotesForPosition <= 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(totalVotesForPosition)*1000) / 10
}
