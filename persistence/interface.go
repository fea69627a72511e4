// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/drawparty/models"
)

// Database is the storage surface for game history and room snapshots.
type Database interface {
	// ApplyGameResult stores the record and updates every listed
	// participant's aggregates in one transaction.
	ApplyGameResult(record *models.GameRecord) error
	GetParticipantStats(participantID string) (*models.ParticipantStats, error)
	SaveRoomState(roomCode, status string, membersJSON string) error
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
