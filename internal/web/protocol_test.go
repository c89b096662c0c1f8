package web

import (
	"testing"

	"github.com/toocheesy/stacked/internal/game"
)

func TestBuildStateViewHidesOtherHands(t *testing.T) {
	s, err := game.NewSession(game.SessionConfig{NoShuffle: true})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	sv := BuildStateView(s, 0)
	if sv.You != 0 || sv.Round != 1 {
		t.Errorf("view = you %d, round %d", sv.You, sv.Round)
	}
	if len(sv.Hand) != 4 {
		t.Errorf("hand = %v", sv.Hand)
	}
	if sv.Hand[0] != "2♥" {
		t.Errorf("hand[0] = %s", sv.Hand[0])
	}
	if len(sv.Board) != 4 {
		t.Errorf("board = %v", sv.Board)
	}
	if !sv.IsYourTurn {
		t.Error("seat 0 should lead the first round")
	}

	if len(sv.Seats) != 3 {
		t.Fatalf("seats = %d", len(sv.Seats))
	}
	for _, seat := range sv.Seats {
		if seat.HandCount != 4 {
			t.Errorf("seat %d hand count = %d", seat.Player, seat.HandCount)
		}
	}
	if !sv.Seats[2].IsDealer {
		t.Error("dealer button should start on the last seat")
	}
	if sv.TimerMs != 0 {
		t.Errorf("timer = %d in untimed mode", sv.TimerMs)
	}
}

func TestBuildStateViewTimedMode(t *testing.T) {
	s, err := game.NewSession(game.SessionConfig{Mode: game.SpeedMode(), NoShuffle: true})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	sv := BuildStateView(s, 1)
	if sv.TimerMs <= 0 {
		t.Errorf("timer = %d, want positive", sv.TimerMs)
	}
	if sv.IsYourTurn {
		t.Error("seat 1 does not lead")
	}
}
