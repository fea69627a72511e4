// game/engine.go
package game

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

type turnPhase int

const (
	phaseAwaitingWord turnPhase = iota
	phaseDrawing
)

// turnState is the per-room record of an in-flight game. It exists exactly
// while the room is playing: created by StartCycle, destroyed when the game
// ends or the room becomes non-viable.
type turnState struct {
	drawOrder       []string
	drawerIdx       int
	scores          map[string]int
	chosenWord      string
	correctGuessers []string
	round           int
	totalRounds     int
	turnCount       int
	phase           turnPhase
	timerID         int64
	timerSeq        uint64
	turnStartedAt   time.Time
}

func (st *turnState) currentDrawer() string {
	return st.drawOrder[st.drawerIdx]
}

func (st *turnState) totalTurns() int {
	return len(st.drawOrder) * st.totalRounds
}

func (st *turnState) hasGuessed(participantID string) bool {
	for _, id := range st.correctGuessers {
		if id == participantID {
			return true
		}
	}
	return false
}

// Engine owns every active room's turn state, keyed by room code. All
// transitions run under one mutex, so callbacks from timers and transport
// handlers never overlap. Operations on rooms without state are benign
// no-ops: stale or duplicate events are a transport concern.
type Engine struct {
	mu    sync.Mutex
	rooms map[string]*turnState

	dir     Directory
	bc      Broadcaster
	words   WordSource
	timers  TimerService
	metrics Metrics

	recorder        Recorder
	turnDuration    time.Duration
	wordChoiceCount int
	log             *zap.SugaredLogger
}

func NewEngine(dir Directory, broadcaster Broadcaster, words WordSource, timers TimerService) *Engine {
	return &Engine{
		rooms:           make(map[string]*turnState),
		dir:             dir,
		bc:              broadcaster,
		words:           words,
		timers:          timers,
		metrics:         NopMetrics{},
		turnDuration:    70 * time.Second,
		wordChoiceCount: 3,
		log:             zap.NewNop().Sugar(),
	}
}

func (e *Engine) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		e.log = log
	}
}

func (e *Engine) SetMetrics(m Metrics) {
	if m != nil {
		e.metrics = m
	}
}

func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

func (e *Engine) SetTurnDuration(d time.Duration) {
	if d > 0 {
		e.turnDuration = d
	}
}

// StartCycle initializes turn state for a room from the directory's current
// membership and kicks off the first turn. It logs and creates no state if
// the room is unknown, empty, or already playing.
func (e *Engine) StartCycle(roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.rooms[roomCode]; exists {
		e.log.Warnf("room %s: start requested but a game is already running", roomCode)
		return
	}

	info, ok := e.dir.FindRoomByCode(roomCode)
	if !ok || len(info.MemberIDs) == 0 {
		e.log.Errorf("room %s: not found or has no members, cannot start", roomCode)
		return
	}

	totalRounds := info.Rounds
	if totalRounds < 1 {
		totalRounds = 1
	}

	st := &turnState{
		drawOrder:   append([]string(nil), info.MemberIDs...),
		scores:      make(map[string]int, len(info.MemberIDs)),
		round:       1,
		totalRounds: totalRounds,
	}
	for _, id := range info.MemberIDs {
		st.scores[id] = 0
	}
	e.rooms[roomCode] = st

	e.metrics.GameStarted()
	e.log.Infof("room %s: game started with %d participants, %d rounds", roomCode, len(st.drawOrder), totalRounds)
	e.initiateTurnLocked(roomCode, st)
}

// initiateTurnLocked announces the current drawer and their word choices.
// The timer is not armed yet: drawing starts when a word is chosen.
func (e *Engine) initiateTurnLocked(roomCode string, st *turnState) {
	drawerID := st.currentDrawer()

	choices, err := e.words.Pick(e.wordChoiceCount)
	if err != nil {
		// Configuration error: the room cannot proceed without words.
		e.log.Errorf("room %s: word selection failed: %v", roomCode, err)
		e.endGameLocked(roomCode, st)
		return
	}

	st.phase = phaseAwaitingWord
	st.turnStartedAt = time.Now()
	e.bc.ToRoom(roomCode, EventStartTurn, StartTurnPayload{
		DrawerID:    drawerID,
		WordChoices: choices,
	})
}

// ChooseWord records the drawer's pick, tells the room how long the word is
// without revealing it, and arms the turn timer.
func (e *Engine) ChooseWord(roomCode, word string) {
	if word == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.rooms[roomCode]
	if !ok {
		return
	}

	st.chosenWord = word
	st.phase = phaseDrawing
	e.bc.ToRoom(roomCode, EventTurnStarted, TurnStartedPayload{
		WordLength: utf8.RuneCountInString(word),
		DrawerID:   st.currentDrawer(),
	})
	e.armTimerLocked(roomCode, st)
}

// SubmitGuess evaluates a guess against the chosen word. Misses flow to the
// room as chat; the first correct guess per participant scores, repeats get
// a private notice. When everyone but the drawer has solved the word the
// turn advances immediately.
func (e *Engine) SubmitGuess(roomCode, guess, participantID string) {
	trimmed := strings.TrimSpace(guess)
	if trimmed == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.rooms[roomCode]
	if !ok {
		return
	}

	drawerID := st.currentDrawer()
	if st.chosenWord != "" && strings.EqualFold(trimmed, st.chosenWord) {
		if participantID == drawerID {
			// The drawer cannot score on their own word, and relaying it
			// as chat would reveal it.
			return
		}
		if st.hasGuessed(participantID) {
			e.metrics.GuessReceived(true)
			e.bc.ToParticipant(participantID, EventAlreadyGuessed, AlreadyGuessedPayload{
				Message: "You have already guessed correctly this turn!",
			})
			return
		}

		st.correctGuessers = append(st.correctGuessers, participantID)
		awardGuesser(st.scores, participantID, len(st.drawOrder), len(st.correctGuessers))
		awardDrawer(st.scores, drawerID)
		e.metrics.GuessReceived(true)

		e.bc.ToRoom(roomCode, EventUpdateScores, UpdateScoresPayload{Scores: copyScores(st.scores)})
		e.bc.ToRoom(roomCode, EventCorrectGuess, CorrectGuessPayload{ParticipantID: participantID})

		if len(st.correctGuessers) == len(st.drawOrder)-1 {
			e.cancelTimerLocked(st)
			e.bc.ToRoom(roomCode, EventAllGuessed, struct{}{})
			e.advanceLocked(roomCode, st, drawerID, true)
		}
		return
	}

	e.metrics.GuessReceived(false)
	e.bc.ToRoom(roomCode, EventChatMessage, ChatMessagePayload{
		ParticipantID: participantID,
		Message:       guess,
	})
}

// ProceedToNextTurn ends the current turn and starts the next one, or ends
// the game when every turn has been played.
func (e *Engine) ProceedToNextTurn(roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.rooms[roomCode]
	if !ok {
		return
	}
	e.advanceLocked(roomCode, st, st.currentDrawer(), true)
}

// HandleDeparture removes a participant from the rotation. Their score
// entry survives so the final scoreboard still lists them. A departing
// drawer abandons the turn; dropping below two participants ends the game
// regardless of turn progress.
func (e *Engine) HandleDeparture(roomCode, participantID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.rooms[roomCode]
	if !ok {
		return
	}

	idx := -1
	for i, id := range st.drawOrder {
		if id == participantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	wasDrawer := idx == st.drawerIdx
	st.drawOrder = append(st.drawOrder[:idx], st.drawOrder[idx+1:]...)
	for i, id := range st.correctGuessers {
		if id == participantID {
			st.correctGuessers = append(st.correctGuessers[:i], st.correctGuessers[i+1:]...)
			break
		}
	}
	if idx < st.drawerIdx {
		st.drawerIdx--
	}

	if len(st.drawOrder) < 2 {
		if wasDrawer {
			e.bc.ToRoom(roomCode, EventDrawerLeft, DrawerLeftPayload{ParticipantID: participantID})
		}
		e.log.Infof("room %s: %d participant(s) left, ending game", roomCode, len(st.drawOrder))
		e.endGameLocked(roomCode, st)
		return
	}

	if wasDrawer {
		e.bc.ToRoom(roomCode, EventDrawerLeft, DrawerLeftPayload{ParticipantID: participantID})
		// Removing the drawer already shifted the rotation onto the next
		// participant, so this advance must not rotate again.
		e.advanceLocked(roomCode, st, participantID, false)
		return
	}

	if st.phase == phaseDrawing && len(st.correctGuessers) == len(st.drawOrder)-1 {
		e.cancelTimerLocked(st)
		e.bc.ToRoom(roomCode, EventAllGuessed, struct{}{})
		e.advanceLocked(roomCode, st, st.currentDrawer(), true)
	}
}

// IsActive reports whether a game is running for the room.
func (e *Engine) IsActive(roomCode string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.rooms[roomCode]
	return ok
}

// ActiveGames returns a snapshot of every in-flight game.
func (e *Engine) ActiveGames() []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(e.rooms))
	for code, st := range e.rooms {
		snapshots = append(snapshots, Snapshot{
			RoomCode:    code,
			Round:       st.round,
			TotalRounds: st.totalRounds,
			TurnCount:   st.turnCount,
			DrawerID:    st.currentDrawer(),
			Scores:      copyScores(st.scores),
		})
	}
	return snapshots
}

// Snapshot is a read-only view of one room's progress.
type Snapshot struct {
	RoomCode    string         `json:"roomCode"`
	Round       int            `json:"round"`
	TotalRounds int            `json:"totalRounds"`
	TurnCount   int            `json:"turnCount"`
	DrawerID    string         `json:"drawerId"`
	Scores      map[string]int `json:"scores"`
}

// advanceLocked finishes the current turn. rotate is false only when the
// departing drawer's removal already moved the index to the next drawer.
func (e *Engine) advanceLocked(roomCode string, st *turnState, endedDrawerID string, rotate bool) {
	e.cancelTimerLocked(st)
	st.turnCount++
	e.metrics.TurnCompleted(time.Since(st.turnStartedAt))

	if st.turnCount >= st.totalTurns() {
		e.endGameLocked(roomCode, st)
		return
	}

	guessers := append([]string{}, st.correctGuessers...)
	e.bc.ToRoom(roomCode, EventTurnEnded, TurnEndedPayload{
		Word:            st.chosenWord,
		CorrectGuessers: guessers,
		DrawerID:        endedDrawerID,
	})

	st.correctGuessers = nil
	st.chosenWord = ""
	if rotate {
		st.drawerIdx = (st.drawerIdx + 1) % len(st.drawOrder)
		if st.drawerIdx == 0 {
			st.round++
		}
	} else if st.drawerIdx >= len(st.drawOrder) {
		// Departed drawer held the last slot: wrap and complete the cycle.
		st.drawerIdx = 0
		st.round++
	}

	e.initiateTurnLocked(roomCode, st)
}

// endGameLocked broadcasts the final scoreboard and discards the room's
// state. Departed participants still appear in the scores.
func (e *Engine) endGameLocked(roomCode string, st *turnState) {
	e.cancelTimerLocked(st)
	scores := copyScores(st.scores)

	e.bc.ToRoom(roomCode, EventGameEnded, GameEndedPayload{Scores: scores})
	delete(e.rooms, roomCode)
	e.metrics.GameEnded()
	e.log.Infof("room %s: game ended after %d turns", roomCode, st.turnCount)

	if e.recorder != nil {
		rounds := st.totalRounds
		go func() {
			if err := e.recorder.RecordGameResult(roomCode, scores, rounds); err != nil {
				e.log.Errorf("room %s: failed to record game result: %v", roomCode, err)
			}
		}()
	}
}

// armTimerLocked replaces any live timer with a fresh turn deadline. The
// sequence number makes an already-fired stale callback a no-op.
func (e *Engine) armTimerLocked(roomCode string, st *turnState) {
	e.cancelTimerLocked(st)
	seq := st.timerSeq
	st.timerID = e.timers.AddTimer(e.turnDuration, 0, func() {
		e.turnExpired(roomCode, seq)
	})
}

func (e *Engine) cancelTimerLocked(st *turnState) {
	if st.timerID != 0 {
		e.timers.RemoveTimer(st.timerID)
		st.timerID = 0
	}
	st.timerSeq++
}

func (e *Engine) turnExpired(roomCode string, seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.rooms[roomCode]
	if !ok || st.timerSeq != seq {
		return
	}
	st.timerID = 0
	e.log.Infof("room %s: turn timed out", roomCode)
	e.advanceLocked(roomCode, st, st.currentDrawer(), true)
}
