// models/models.go
package models

import (
	"time"
)

// GameRecord is the persisted outcome of one finished game.
type GameRecord struct {
	RoomCode  string         `json:"room_code"`
	Rounds    int            `json:"rounds"`
	Scores    map[string]int `json:"scores"`
	WinnerID  string         `json:"winner_id"`
	CreatedAt time.Time      `json:"created_at"`
}

// ParticipantStats are per-participant aggregates across games.
type ParticipantStats struct {
	ParticipantID string `json:"participant_id"`
	GamesPlayed   int    `json:"games_played"`
	Wins          int    `json:"wins"`
	TotalPoints   int    `json:"total_points"`
	BestScore     int    `json:"best_score"`
}

// RoomState is the persisted snapshot of a room's directory entry.
type RoomState struct {
	RoomCode  string      `json:"room_code"`
	Status    string      `json:"status"`
	Members   interface{} `json:"members"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
