// game/bridge.go
package game

// Bridge translates external room events into engine calls. Transport
// handlers keep the directory's membership current and route everything
// game-related through here.
type Bridge struct {
	engine *Engine
	dir    Directory
	bc     Broadcaster
}

func NewBridge(engine *Engine, dir Directory, broadcaster Broadcaster) *Bridge {
	return &Bridge{
		engine: engine,
		dir:    dir,
		bc:     broadcaster,
	}
}

// StartGame begins the turn cycle if the requester created the room. Anyone
// else gets a private rejection message and the room is left untouched.
func (b *Bridge) StartGame(roomCode, requesterID string) {
	info, ok := b.dir.FindRoomByCode(roomCode)
	if !ok {
		return
	}
	if info.CreatorID != requesterID {
		b.bc.ToParticipant(requesterID, EventStartDenied, StartDeniedPayload{
			Message: "Only the room creator can start the game.",
		})
		return
	}

	b.bc.ToRoom(roomCode, EventGameStarted, struct{}{})
	b.engine.StartCycle(roomCode)
}

// WordChosen forwards the drawer's pick to the engine.
func (b *Bridge) WordChosen(roomCode, word string) {
	if roomCode == "" || word == "" {
		return
	}
	b.engine.ChooseWord(roomCode, word)
}

// GuessSubmitted forwards a guess to the engine.
func (b *Bridge) GuessSubmitted(roomCode, guess, participantID string) {
	if roomCode == "" || participantID == "" {
		return
	}
	b.engine.SubmitGuess(roomCode, guess, participantID)
}

// ParticipantLeft tells the engine a participant is gone. The caller has
// already removed them from the directory.
func (b *Bridge) ParticipantLeft(roomCode, participantID string) {
	if roomCode == "" || participantID == "" {
		return
	}
	b.engine.HandleDeparture(roomCode, participantID)
}
