// game/events.go
package game

// Event names broadcast to rooms or sent to single participants.
const (
	EventStartTurn      = "start-turn"
	EventTurnStarted    = "turn-started"
	EventUpdateScores   = "update-scores"
	EventCorrectGuess   = "correct-guess"
	EventAlreadyGuessed = "already-guessed"
	EventAllGuessed     = "all-guessed"
	EventChatMessage    = "chat-message"
	EventTurnEnded      = "turn-ended"
	EventGameEnded      = "game-ended"
	EventDrawerLeft     = "drawer-left"
	EventGameStarted    = "game-started"
	EventStartDenied    = "start-denied"
)

type StartTurnPayload struct {
	DrawerID    string   `json:"drawerId"`
	WordChoices []string `json:"wordChoices"`
}

type TurnStartedPayload struct {
	WordLength int    `json:"wordLength"`
	DrawerID   string `json:"drawerId"`
}

type UpdateScoresPayload struct {
	Scores map[string]int `json:"scores"`
}

type CorrectGuessPayload struct {
	ParticipantID string `json:"participantId"`
}

type AlreadyGuessedPayload struct {
	Message string `json:"message"`
}

type ChatMessagePayload struct {
	ParticipantID string `json:"participantId"`
	Message       string `json:"message"`
}

type TurnEndedPayload struct {
	Word            string   `json:"word"`
	CorrectGuessers []string `json:"correctGuessers"`
	DrawerID        string   `json:"drawerId"`
}

type GameEndedPayload struct {
	Scores map[string]int `json:"scores"`
}

type DrawerLeftPayload struct {
	ParticipantID string `json:"participantId"`
}

type StartDeniedPayload struct {
	Message string `json:"message"`
}
