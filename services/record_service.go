// services/record_service.go
package services

import (
	"time"

	"github.com/wfunc/drawparty/models"
	"github.com/wfunc/drawparty/persistence"
)

// RecordService turns finished games into history rows. It implements
// game.Recorder.
type RecordService struct {
	db persistence.Database
}

func NewRecordService(db persistence.Database) *RecordService {
	return &RecordService{db: db}
}

// RecordGameResult persists the final scoreboard and updates each listed
// participant's aggregates. The winner is the highest scorer; ties go to
// whichever participant the map yields first.
func (s *RecordService) RecordGameResult(roomCode string, scores map[string]int, rounds int) error {
	record := &models.GameRecord{
		RoomCode:  roomCode,
		Rounds:    rounds,
		Scores:    scores,
		WinnerID:  winnerOf(scores),
		CreatedAt: time.Now(),
	}
	return s.db.ApplyGameResult(record)
}

// GetParticipantStats returns a participant's aggregates across games.
func (s *RecordService) GetParticipantStats(participantID string) (*models.ParticipantStats, error) {
	return s.db.GetParticipantStats(participantID)
}

func winnerOf(scores map[string]int) string {
	winner := ""
	best := 0
	for id, score := range scores {
		if winner == "" || score > best {
			winner = id
			best = score
		}
	}
	return winner
}
