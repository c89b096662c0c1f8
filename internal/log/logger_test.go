package log

import (
	"strings"
	"testing"
)

func TestMemoryLoggerSequencesEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewShuffleEvent(1))
	l.Log(NewTurnEvent(1, 0))
	l.Log(NewTurnEvent(1, 1))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("events = %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d seq = %d", i, e.Seq)
		}
	}
	if got := l.EventsOfType(EventTurn); len(got) != 2 {
		t.Errorf("turn events = %d", len(got))
	}
	if l.LastEvent().Type != EventTurn {
		t.Errorf("last event = %v", l.LastEvent().Type)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var sb strings.Builder
	l := NewTextLogger(&sb)
	l.Log(NewCaptureEvent(2, 1, "7♣", 2, 10, "pair"))

	out := sb.String()
	if !strings.HasPrefix(out, "R2 ") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Bot 1") {
		t.Errorf("output = %q, want player name", out)
	}
	// The memory buffer still fills for assertions.
	if len(l.Events()) != 1 {
		t.Errorf("events = %d", len(l.Events()))
	}
}

func TestFormatAllJoinsTranscript(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewShuffleEvent(1))
	l.Log(NewPlaceEvent(1, 0, "J♥"))

	out := FormatAll(l.Events())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d: %q", len(lines), out)
	}
	if lines[0] != FormatEvent(l.Events()[0]) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "J♥") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestCaptureEventFields(t *testing.T) {
	e := NewCaptureEvent(1, 0, "9♠", 3, 15, "sum")
	if e.Type != EventCapture || e.Card != "9♠" || e.Cards != 3 || e.Points != 15 {
		t.Errorf("event = %+v", e)
	}
	if !strings.Contains(e.Details, "15") {
		t.Errorf("details = %q", e.Details)
	}
}
