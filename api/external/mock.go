/* mock.go
 * Contains the development fixture returned when the backend can't be reached and mock fallback is enabled
 */

package external

const mockVideoURL = "https://www.youtube.com/embed/dQw4w9WgXcQ"

// MockTournamentData returns a small fixture covering the first two winners rounds, the first losers round and
// the final. Whether to use it is a decision for the caller
func MockTournamentData() Tournament {
	contestants := make([]Contestant, 0, 8)
	for i := 1; i <= 8; i++ {
		contestants = append(contestants, Contestant{ID: NewID(i), Name: "Player " + NewID(i).String()})
	}

	matchups := []Matchup{
		{ID: "1", Number: 1, ContestantOneID: "1", ContestantTwoID: "2", Outcome: "1", YoutubeURL: mockVideoURL},
		{ID: "2", Number: 2, ContestantOneID: "3", ContestantTwoID: "4", Outcome: "3", YoutubeURL: mockVideoURL},
		{ID: "3", Number: 3, ContestantOneID: "5", ContestantTwoID: "6", Outcome: "5", YoutubeURL: mockVideoURL},
		{ID: "4", Number: 4, ContestantOneID: "7", ContestantTwoID: "8", Outcome: "7", YoutubeURL: mockVideoURL},
		{ID: "5", Number: 33, ContestantOneID: "2", ContestantTwoID: "4", Outcome: "4", YoutubeURL: mockVideoURL},
		{ID: "6", Number: 34, ContestantOneID: "6", ContestantTwoID: "8", Outcome: "6", YoutubeURL: mockVideoURL},
		{ID: "7", Number: 49, ContestantOneID: "1", ContestantTwoID: "3", Outcome: "1", YoutubeURL: mockVideoURL},
		{ID: "8", Number: 50, ContestantOneID: "5", ContestantTwoID: "7", Outcome: "5", YoutubeURL: mockVideoURL},
		{ID: "9", Number: 126, ContestantOneID: "1", ContestantTwoID: "5", YoutubeURL: mockVideoURL},
	}

	return Tournament{Contestants: contestants, Matchups: matchups}
}
