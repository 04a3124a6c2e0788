package core

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestHubJoinBroadcastsMemberList(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	joinRoom(hub, alice, "r1", "alice")
	ev := mustEvent(t, alice.Events, EventMembers)
	if !reflect.DeepEqual(ev.Members, []string{"alice"}) {
		t.Fatalf("unexpected first member list: %v", ev.Members)
	}

	joinRoom(hub, bob, "r1", "bob")

	want := []string{"alice", "bob"}
	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventMembers)
		if ev.Room != "r1" || !reflect.DeepEqual(ev.Members, want) {
			t.Fatalf("unexpected member list for %s: %+v", c.ID, ev)
		}
	}
}

func TestHubJoinWithMissingFieldsIsIgnored(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	hub.RegisterClient(alice)

	joinRoom(hub, alice, "r1", "")
	joinRoom(hub, alice, "", "alice")

	mustNoEvent(t, alice.Events, EventMembers, 150*time.Millisecond)
	if len(hub.Members("r1")) != 0 {
		t.Fatalf("room should not have been created: %v", hub.Members("r1"))
	}
}

func TestHubCodeChangeExcludesSender(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")
	mustEvent(t, bob.Events, EventMembers)

	hub.Dispatch(&Command{Kind: CommandCodeChange, Client: alice, Room: "r1", Code: "print(1)"})

	ev := mustEvent(t, bob.Events, EventCodeUpdate)
	if ev.Code != "print(1)" {
		t.Fatalf("unexpected code update: %+v", ev)
	}
	mustNoEvent(t, alice.Events, EventCodeUpdate, 150*time.Millisecond)
}

func TestHubTypingExcludesSender(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")

	hub.Dispatch(&Command{Kind: CommandTyping, Client: alice, Room: "r1", Name: "alice"})

	ev := mustEvent(t, bob.Events, EventUserTyping)
	if ev.User != "alice" {
		t.Fatalf("unexpected typing event: %+v", ev)
	}
	mustNoEvent(t, alice.Events, EventUserTyping, 150*time.Millisecond)
}

func TestHubLanguageChangeIncludesSender(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")

	hub.Dispatch(&Command{Kind: CommandLanguageChange, Client: alice, Room: "r1", Language: "go"})

	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventLanguageUpdate)
		if ev.Language != "go" {
			t.Fatalf("unexpected language update for %s: %+v", c.ID, ev)
		}
	}
}

func TestHubRejoinLeavesOldRoomFirst(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")
	mustEvent(t, bob.Events, EventMembers)

	joinRoom(hub, alice, "r2", "alice")

	// Old room sees alice removed.
	ev := mustEvent(t, bob.Events, EventMembers)
	if ev.Room != "r1" || !reflect.DeepEqual(ev.Members, []string{"bob"}) {
		t.Fatalf("old room not updated: %+v", ev)
	}

	// Alice receives the old room's farewell list, then her new room's list.
	ev = mustEvent(t, alice.Events, EventMembers)
	if ev.Room != "r1" || !reflect.DeepEqual(ev.Members, []string{"bob"}) {
		t.Fatalf("leaver should see old room's final list: %+v", ev)
	}
	ev = mustEvent(t, alice.Events, EventMembers)
	if ev.Room != "r2" || !reflect.DeepEqual(ev.Members, []string{"alice"}) {
		t.Fatalf("new room not joined: %+v", ev)
	}
}

func TestHubLeaveWithoutRoomIsNoop(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	hub.RegisterClient(alice)

	hub.Dispatch(&Command{Kind: CommandLeaveRoom, Client: alice})
	mustNoEvent(t, alice.Events, EventMembers, 150*time.Millisecond)
}

func TestHubDisconnectBroadcastsAndIsIdempotent(t *testing.T) {
	hub := startHub(t, nil)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")
	mustEvent(t, bob.Events, EventMembers)

	hub.UnregisterClient(alice)

	ev := mustEvent(t, bob.Events, EventMembers)
	if !reflect.DeepEqual(ev.Members, []string{"bob"}) {
		t.Fatalf("unexpected member list after disconnect: %v", ev.Members)
	}

	// Second disconnect for the same connection changes nothing.
	hub.UnregisterClient(alice)
	mustNoEvent(t, bob.Events, EventMembers, 150*time.Millisecond)
}

func TestHubCompileForUnknownRoomIsDropped(t *testing.T) {
	runner := &fakeRunner{payload: json.RawMessage(`{"run":{"output":"ok"}}`)}
	hub := startHub(t, runner)

	alice := NewClient("a")
	hub.RegisterClient(alice)

	hub.Dispatch(&Command{Kind: CommandCompileCode, Client: alice, Room: "ghost", Code: "x", Language: "go", Version: "1"})

	mustNoEvent(t, alice.Events, EventCodeResponse, 200*time.Millisecond)
	if runner.callCount() != 0 {
		t.Fatalf("runner should not have been called, got %d calls", runner.callCount())
	}
}

func TestHubCompileBroadcastsResultToWholeRoom(t *testing.T) {
	runner := &fakeRunner{payload: json.RawMessage(`{"run":{"output":"42\n"}}`)}
	hub := startHub(t, runner)

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)
	joinRoom(hub, alice, "r1", "alice")
	joinRoom(hub, bob, "r1", "bob")

	hub.Dispatch(&Command{Kind: CommandCompileCode, Client: alice, Room: "r1", Code: "print(42)", Language: "python", Version: "3.10"})

	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events, EventCodeResponse)
		if string(ev.Result) != `{"run":{"output":"42\n"}}` {
			t.Fatalf("unexpected result for %s: %s", c.ID, ev.Result)
		}
	}

	if runner.lastReq.Code != "print(42)" || runner.lastReq.Language != "python" || runner.lastReq.Version != "3.10" {
		t.Fatalf("unexpected run request: %+v", runner.lastReq)
	}
}

func TestHubCompileFailureBroadcastsSyntheticPayload(t *testing.T) {
	runner := &fakeRunner{err: errors.New("connection refused")}
	hub := startHub(t, runner)

	alice := NewClient("a")
	hub.RegisterClient(alice)
	joinRoom(hub, alice, "r1", "alice")

	hub.Dispatch(&Command{Kind: CommandCompileCode, Client: alice, Room: "r1", Code: "x", Language: "go", Version: "1"})

	ev := mustEvent(t, alice.Events, EventCodeResponse)

	var decoded struct {
		Run struct {
			Output string `json:"output"`
		} `json:"run"`
	}
	if err := json.Unmarshal(ev.Result, &decoded); err != nil {
		t.Fatalf("failure payload not valid json: %v", err)
	}
	if decoded.Run.Output != "Error compiling code." {
		t.Fatalf("unexpected failure output: %q", decoded.Run.Output)
	}
}

func TestHubCompileResultAfterRoomEmptiedReachesNobody(t *testing.T) {
	gate := make(chan struct{})
	runner := &fakeRunner{payload: json.RawMessage(`{"run":{"output":"late"}}`), gate: gate}
	hub := startHub(t, runner)

	alice := NewClient("a")
	hub.RegisterClient(alice)
	joinRoom(hub, alice, "r1", "alice")
	mustEvent(t, alice.Events, EventMembers)

	hub.Dispatch(&Command{Kind: CommandCompileCode, Client: alice, Room: "r1", Code: "x", Language: "go", Version: "1"})

	// Alice leaves while the execution call is still in flight.
	hub.Dispatch(&Command{Kind: CommandLeaveRoom, Client: alice})
	mustEvent(t, alice.Events, EventMembers)
	close(gate)

	// The result arrives, finds an empty room, and reaches nobody. In
	// particular it must not reach the departed requester.
	mustNoEvent(t, alice.Events, EventCodeResponse, 200*time.Millisecond)
}
