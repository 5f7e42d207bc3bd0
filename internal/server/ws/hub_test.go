package ws

import "testing"

func TestHub_JoinBroadcastRemove(t *testing.T) {
	t.Parallel()

	h := NewHub()
	a := &Conn{send: make(chan []byte, 1), username: "a"}
	b := &Conn{send: make(chan []byte, 1), username: "b"}

	h.Join("room-1", a)
	h.Join("room-1", b)
	if got := h.Members("room-1"); got != 2 {
		t.Fatalf("members %d, want 2", got)
	}

	h.Broadcast("room-1", []byte("hello"), a)
	select {
	case msg := <-b.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message %q", msg)
		}
	default:
		t.Fatal("b did not receive broadcast")
	}
	select {
	case <-a.send:
		t.Fatal("sender must not receive its own broadcast")
	default:
	}

	h.Remove(b)
	if got := h.Members("room-1"); got != 1 {
		t.Fatalf("members %d after remove, want 1", got)
	}

	h.Remove(a)
	if got := h.Members("room-1"); got != 0 {
		t.Fatalf("members %d after removing all, want 0", got)
	}
}

func TestHub_BroadcastSkipsFullBuffers(t *testing.T) {
	t.Parallel()

	h := NewHub()
	slow := &Conn{send: make(chan []byte, 1), username: "slow"}
	h.Join("room-1", slow)

	h.Broadcast("room-1", []byte("one"), nil)
	// buffer now full; this must not block
	h.Broadcast("room-1", []byte("two"), nil)

	if msg := <-slow.send; string(msg) != "one" {
		t.Fatalf("unexpected first message %q", msg)
	}
	select {
	case msg := <-slow.send:
		t.Fatalf("expected dropped frame, got %q", msg)
	default:
	}
}
