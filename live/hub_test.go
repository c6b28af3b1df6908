package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "admin-1",
	}

	hub.register <- client

	data := []byte(`{"operation":"broken","itemType":"item"}`)
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte)} // unbuffered
	hub.register <- slow

	hub.Broadcast([]byte("one"))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.Send:
			if !ok {
				return // dropped, as expected
			}
			// the send won the race this round, try again
			hub.Broadcast([]byte("again"))
		case <-deadline:
			t.Fatal("timeout waiting for slow consumer to be dropped")
		}
	}
}

func TestBroadcastAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte("late"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked after Stop")
	}
}
