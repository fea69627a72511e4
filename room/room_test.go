package room

import (
	"strings"
	"testing"
)

func TestCreateRoom(t *testing.T) {
	manager := NewManager()

	created, creator, err := manager.CreateRoom("Alice", 4, 3)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	if len(created.Code) != codeLength {
		t.Errorf("Expected a %d-character code, got %q", codeLength, created.Code)
	}
	for _, c := range created.Code {
		if !strings.ContainsRune(codeCharset, c) {
			t.Errorf("Code %q contains character %q outside the charset", created.Code, c)
		}
	}
	if created.CreatorID != creator.ID {
		t.Error("Creator should be the room's first member")
	}
	if created.GetStatus() != StatusWaiting {
		t.Errorf("Expected status waiting, got %s", created.GetStatus())
	}
	if created.MemberCount() != 1 {
		t.Errorf("Expected 1 member, got %d", created.MemberCount())
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 room, got %d", manager.Count())
	}
}

func TestCreateRoom_ValidatesRounds(t *testing.T) {
	manager := NewManager()

	if _, _, err := manager.CreateRoom("Alice", 4, 0); err != ErrInvalidRounds {
		t.Errorf("Expected ErrInvalidRounds for 0 rounds, got %v", err)
	}
	if _, _, err := manager.CreateRoom("Alice", 4, 11); err != ErrInvalidRounds {
		t.Errorf("Expected ErrInvalidRounds for 11 rounds, got %v", err)
	}
	if _, _, err := manager.CreateRoom("Alice", 4, 10); err != nil {
		t.Errorf("10 rounds should be valid, got %v", err)
	}
}

func TestCreateRoom_ClampsMaxParticipants(t *testing.T) {
	manager := NewManager()

	created, _, err := manager.CreateRoom("Alice", 1, 3)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if created.MaxParticipants != DefaultMaxParticipants {
		t.Errorf("Expected default max %d, got %d", DefaultMaxParticipants, created.MaxParticipants)
	}

	created, _, err = manager.CreateRoom("Alice", 100, 3)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if created.MaxParticipants != DefaultMaxParticipants {
		t.Errorf("Expected default max %d, got %d", DefaultMaxParticipants, created.MaxParticipants)
	}
}

func TestJoin(t *testing.T) {
	manager := NewManager()
	created, _, _ := manager.CreateRoom("Alice", 3, 3)

	joined, member, err := manager.Join(created.Code, "Bob")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if joined.Code != created.Code {
		t.Errorf("Joined the wrong room: %s", joined.Code)
	}
	if member.Name != "Bob" || member.ID == "" {
		t.Errorf("Unexpected member: %+v", member)
	}
	if created.MemberCount() != 2 {
		t.Errorf("Expected 2 members, got %d", created.MemberCount())
	}

	if _, _, err := manager.Join("ZZZZ", "Carol"); err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestJoin_FullRoom(t *testing.T) {
	manager := NewManager()
	created, _, _ := manager.CreateRoom("Alice", 2, 3)
	manager.Join(created.Code, "Bob")

	if _, _, err := manager.Join(created.Code, "Carol"); err != ErrRoomFull {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}
}

func TestJoin_RejectedOncePlaying(t *testing.T) {
	manager := NewManager()
	created, _, _ := manager.CreateRoom("Alice", 4, 3)
	manager.Join(created.Code, "Bob")
	created.SetStatus(StatusPlaying)

	if _, _, err := manager.Join(created.Code, "Carol"); err != ErrGameInProgress {
		t.Errorf("Expected ErrGameInProgress, got %v", err)
	}
}

func TestLeave_DissolvesEmptyRoom(t *testing.T) {
	manager := NewManager()
	created, creator, _ := manager.CreateRoom("Alice", 4, 3)
	_, bob, _ := manager.Join(created.Code, "Bob")

	if _, removed := manager.Leave(created.Code, bob.ID); !removed {
		t.Fatal("Leave should remove Bob")
	}
	if created.MemberCount() != 1 {
		t.Errorf("Expected 1 member after leave, got %d", created.MemberCount())
	}
	if _, exists := manager.GetRoom(created.Code); !exists {
		t.Fatal("Room should survive while members remain")
	}

	manager.Leave(created.Code, creator.ID)
	if _, exists := manager.GetRoom(created.Code); exists {
		t.Error("Empty room should be dissolved")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 rooms, got %d", manager.Count())
	}
}

func TestLeave_UnknownParticipant(t *testing.T) {
	manager := NewManager()
	created, _, _ := manager.CreateRoom("Alice", 4, 3)

	if _, removed := manager.Leave(created.Code, "nope"); removed {
		t.Error("Removing an unknown participant should report false")
	}
	if _, exists := manager.GetRoom(created.Code); !exists {
		t.Error("Room must survive a failed removal")
	}
}

func TestFindRoomByCode(t *testing.T) {
	manager := NewManager()
	created, creator, _ := manager.CreateRoom("Alice", 4, 7)
	_, bob, _ := manager.Join(created.Code, "Bob")

	info, ok := manager.FindRoomByCode(created.Code)
	if !ok {
		t.Fatal("FindRoomByCode should locate the room")
	}
	if info.Code != created.Code || info.CreatorID != creator.ID || info.Rounds != 7 {
		t.Errorf("Unexpected room info: %+v", info)
	}
	if len(info.MemberIDs) != 2 || info.MemberIDs[0] != creator.ID || info.MemberIDs[1] != bob.ID {
		t.Errorf("Expected member ids in join order, got %v", info.MemberIDs)
	}

	if _, ok := manager.FindRoomByCode("ZZZZ"); ok {
		t.Error("FindRoomByCode should miss unknown codes")
	}
}

func TestSnapshot_ReflectsMembership(t *testing.T) {
	manager := NewManager()
	created, _, _ := manager.CreateRoom("Alice", 4, 3)
	manager.Join(created.Code, "Bob")

	snapshot := created.Snapshot()
	if len(snapshot.Members) != 2 {
		t.Fatalf("Expected 2 members in snapshot, got %d", len(snapshot.Members))
	}
	if snapshot.Members[0].Name != "Alice" || snapshot.Members[1].Name != "Bob" {
		t.Errorf("Members out of join order: %v, %v", snapshot.Members[0].Name, snapshot.Members[1].Name)
	}
	if snapshot.Status != StatusWaiting {
		t.Errorf("Expected waiting status, got %s", snapshot.Status)
	}
}
