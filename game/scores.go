// game/scores.go
package game

// Scoring constants. Fixed by the game rules, not configuration.
const (
	guesserBaseFactor = 50
	guesserRankPenalty = 10
	drawerBonus        = 50
)

// awardGuesser credits a correct guess. fieldSize is the current draw order
// length and rank the 1-based position among this turn's correct guessers,
// so earlier guessers earn more. The result is plain integer addition with
// no floor: late guessers in a large field can in principle score negative.
func awardGuesser(scores map[string]int, participantID string, fieldSize, rank int) {
	scores[participantID] += fieldSize*guesserBaseFactor - rank*guesserRankPenalty
}

// awardDrawer credits the drawer's flat bonus. Awarded once per correct
// guess event, not once per turn.
func awardDrawer(scores map[string]int, drawerID string) {
	scores[drawerID] += drawerBonus
}

func copyScores(scores map[string]int) map[string]int {
	out := make(map[string]int, len(scores))
	for id, score := range scores {
		out[id] = score
	}
	return out
}
