package room

import "strings"

const (
	defaultLeagueID = 39
	defaultSeason   = 2022

	// jokerWrongPenalty is deducted when a Joker is spent on a wrong guess.
	jokerWrongPenalty = 10
)

// streakBonuses are consecutive-correct milestones, each rewarded once per
// player per game.
var streakBonuses = []struct {
	Threshold int
	Bonus     int
}{
	{3, 5},
	{5, 10},
	{7, 15},
}

// marginPoints scores a correct team guess: the full team count for the
// exact position, decaying by one point per unit of positional error,
// never below one for a correct identification.
func marginPoints(totalTeams, actualRank, guessedRank int) int {
	diff := actualRank - guessedRank
	if diff < 0 {
		diff = -diff
	}
	points := totalTeams - diff
	if points < 1 {
		points = 1
	}
	return points
}

// normalizeTeamName makes team-name matching case- and whitespace-insensitive.
func normalizeTeamName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
