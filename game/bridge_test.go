package game

import "testing"

func newTestBridge(members ...string) (*Bridge, *Engine, *fakeBroadcaster) {
	dir := &fakeDirectory{rooms: map[string]RoomInfo{}}
	if len(members) > 0 {
		dir.rooms[testRoom] = RoomInfo{
			Code:      testRoom,
			CreatorID: members[0],
			Rounds:    1,
			MemberIDs: members,
		}
	}
	bc := &fakeBroadcaster{}
	engine := NewEngine(dir, bc, &fakeWords{words: []string{"cat", "moon", "robot"}}, newFakeTimers())
	return NewBridge(engine, dir, bc), engine, bc
}

func TestBridge_OnlyCreatorStartsGame(t *testing.T) {
	bridge, engine, bc := newTestBridge("U1", "U2", "U3")

	bridge.StartGame(testRoom, "U2")

	if engine.IsActive(testRoom) {
		t.Fatal("non-creator must not be able to start the game")
	}
	ev, ok := bc.last(EventStartDenied)
	if !ok {
		t.Fatal("expected a start-denied notice")
	}
	if ev.ToRoom || ev.Target != "U2" {
		t.Errorf("start-denied must be private to U2, got target %s toRoom=%t", ev.Target, ev.ToRoom)
	}

	bc.reset()
	bridge.StartGame(testRoom, "U1")

	if !engine.IsActive(testRoom) {
		t.Fatal("creator's start request must begin the game")
	}
	if bc.count(EventGameStarted) != 1 {
		t.Error("expected a game-started broadcast")
	}
	if bc.count(EventStartTurn) != 1 {
		t.Error("expected the first start-turn to follow")
	}
}

func TestBridge_UnknownRoomIgnored(t *testing.T) {
	bridge, engine, bc := newTestBridge()

	bridge.StartGame(testRoom, "U1")

	if engine.IsActive(testRoom) || len(bc.events) != 0 {
		t.Error("starting an unknown room must do nothing")
	}
}

func TestBridge_BlankArgumentsIgnored(t *testing.T) {
	bridge, _, bc := newTestBridge("U1", "U2")

	bridge.WordChosen("", "cat")
	bridge.WordChosen(testRoom, "")
	bridge.GuessSubmitted(testRoom, "cat", "")
	bridge.ParticipantLeft("", "U1")

	if len(bc.events) != 0 {
		t.Errorf("expected no broadcasts for blank arguments, got %v", bc.names())
	}
}
