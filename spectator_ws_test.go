package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusEndpointServesLastBroadcast(t *testing.T) {
	hub := NewHub()
	server := NewSpectatorServer("127.0.0.1:0", hub, testLogger())
	ts := httptest.NewServer(server.server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("status before any broadcast: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before the first broadcast, got %d", resp.StatusCode)
	}

	settings := DefaultGameSettings()
	settings.BoardSize = 9
	state, _ := runningState(t, settings, []HistoryEntry{
		{Move: Move{X: 4, Y: 4}, Player: PlayerBlack},
	})
	hub.BroadcastState(&state)

	resp, err = http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("status after broadcast: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after a broadcast, got %d", resp.StatusCode)
	}
	var snapshot snapshotPayload
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snapshot.MoveCount != 1 || snapshot.Status != "running" {
		t.Fatalf("snapshot does not match the broadcast state: %+v", snapshot)
	}
}

func TestSnapshotConcurrentWithBroadcast(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardSize = 9
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	hub := NewHub()
	hub.BroadcastState(&state)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if _, ok := hub.Snapshot(); !ok {
				t.Errorf("snapshot missing after the initial broadcast")
				return
			}
		}
	}()

	moves := []Move{{X: 4, Y: 4}, {X: 3, Y: 3}, {X: 5, Y: 5}, {X: 2, Y: 2}}
	for i := 0; i < 50; i++ {
		player := PlayerBlack
		for _, m := range moves {
			if _, err := state.ApplyMove(rules, m, player); err != nil {
				t.Fatalf("apply %v: %v", m, err)
			}
			player = otherPlayer(player)
			hub.BroadcastState(&state)
		}
		for range moves {
			state.UndoMove()
		}
	}
	<-done
}
