// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormGameRecord is the game history row.
type GormGameRecord struct {
	gorm.Model
	RoomCode string         `gorm:"index;not null"`
	Rounds   int            `gorm:"not null"`
	Scores   map[string]int `gorm:"type:jsonb;serializer:json;not null"`
	WinnerID string         `gorm:"index"`
}

// GormParticipantStats is the per-participant aggregate row.
type GormParticipantStats struct {
	gorm.Model
	ParticipantID string `gorm:"uniqueIndex;not null"`
	GamesPlayed   int    `gorm:"default:0"`
	Wins          int    `gorm:"default:0"`
	TotalPoints   int    `gorm:"default:0"`
	BestScore     int    `gorm:"default:0"`
}

// GormRoom mirrors a room's directory entry.
type GormRoom struct {
	gorm.Model
	RoomCode string `gorm:"uniqueIndex;not null"`
	Status   string `gorm:"not null"`
	Members  string `gorm:"type:jsonb"`
}
