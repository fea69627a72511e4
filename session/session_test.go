package session

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/drawparty/network"
)

// mockConn records sent events.
type mockConn struct {
	sent   []string
	closed bool
}

func (m *mockConn) Send(event string, data []byte) error {
	m.sent = append(m.sent, event)
	return nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) RemoteAddr() net.Addr                { return &net.TCPAddr{} }
func (m *mockConn) SetHeartbeat(interval time.Duration) {}

func (m *mockConn) ReadEnvelope() (*network.Envelope, error) {
	return nil, nil
}

func TestSessionBind(t *testing.T) {
	sess := NewSession("s1", &mockConn{})

	if pid, code := sess.Binding(); pid != "" || code != "" {
		t.Errorf("Fresh session must be unbound, got %q/%q", pid, code)
	}

	sess.Bind("U1", "AB12")
	pid, code := sess.Binding()
	if pid != "U1" || code != "AB12" {
		t.Errorf("Expected binding U1/AB12, got %q/%q", pid, code)
	}
}

func TestSessionSendAndClose(t *testing.T) {
	conn := &mockConn{}
	sess := NewSession("s1", conn)

	if err := sess.Send("chat-message", []byte(`{}`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != "chat-message" {
		t.Errorf("Unexpected sent events: %v", conn.sent)
	}

	sess.Close()
	if !conn.closed {
		t.Error("Close should close the connection")
	}
}

func TestManagerAddGetRemove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("s1", &mockConn{})

	manager.Add(sess)
	if got, exists := manager.Get("s1"); !exists || got != sess {
		t.Fatal("Get should return the added session")
	}

	manager.Remove("s1")
	if _, exists := manager.Get("s1"); exists {
		t.Error("Removed session should be gone")
	}
}

func TestManagerLookupByBinding(t *testing.T) {
	manager := NewManager()

	s1 := NewSession("s1", &mockConn{})
	s1.Bind("U1", "AB12")
	s2 := NewSession("s2", &mockConn{})
	s2.Bind("U2", "AB12")
	s3 := NewSession("s3", &mockConn{})
	s3.Bind("U3", "CD34")

	for _, s := range []*Session{s1, s2, s3} {
		manager.Add(s)
	}

	if got := manager.GetByParticipantID("U1"); len(got) != 1 || got[0] != s1 {
		t.Errorf("Expected [s1] for U1, got %d sessions", len(got))
	}
	if got := manager.GetByParticipantID("nobody"); len(got) != 0 {
		t.Errorf("Expected no sessions for unknown participant, got %d", len(got))
	}
	if got := manager.GetByRoomCode("AB12"); len(got) != 2 {
		t.Errorf("Expected 2 sessions in AB12, got %d", len(got))
	}
}

func TestManagerLookupReconnectingParticipant(t *testing.T) {
	manager := NewManager()

	old := NewSession("s1", &mockConn{})
	old.Bind("U1", "AB12")
	fresh := NewSession("s2", &mockConn{})
	fresh.Bind("U1", "AB12")
	manager.Add(old)
	manager.Add(fresh)

	if got := manager.GetByParticipantID("U1"); len(got) != 2 {
		t.Errorf("Expected both sockets during reconnect overlap, got %d", len(got))
	}
}
