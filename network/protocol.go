package network

import "encoding/json"

// Envelope is the wire format for every message in either direction:
// a named event plus an opaque JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names accepted from clients.
const (
	EventJoinRoom   = "join-room"
	EventStartGame  = "start-game"
	EventWordChosen = "word-chosen"
	EventSendGuess  = "send-guess"
	EventSendPath   = "send-path"
)

type JoinRoomRequest struct {
	RoomCode      string `json:"roomCode"`
	ParticipantID string `json:"participantId"`
}

type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
}

type WordChosenRequest struct {
	RoomCode string `json:"roomCode"`
	Word     string `json:"word"`
}

type SendGuessRequest struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

type SendPathRequest struct {
	RoomCode string          `json:"roomCode"`
	PathData json.RawMessage `json:"pathData"`
}
