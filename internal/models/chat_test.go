package models

import (
	"testing"
	"time"
)

// TestAddMessagePreservesOrder verifies that the transcript keeps insertion
// order, which is the conversation order.
func TestAddMessagePreservesOrder(t *testing.T) {
	s := NewChatSession("New Workout")
	s.AddMessage(NewChatMessage("first", true))
	s.AddMessage(NewChatMessage("second", false))
	s.AddMessage(NewChatMessage("third", true))

	if len(s.Messages) != 3 {
		t.Fatalf("messages = %d, want 3", len(s.Messages))
	}
	want := []string{"first", "second", "third"}
	for i, m := range s.Messages {
		if m.Content != want[i] {
			t.Errorf("messages[%d] = %q, want %q", i, m.Content, want[i])
		}
	}
	if !s.Messages[0].IsFromUser || s.Messages[1].IsFromUser {
		t.Error("is_from_user flags not preserved")
	}
}

// TestDisplayTitle verifies the day-type title takes precedence over the
// date fallback.
func TestDisplayTitle(t *testing.T) {
	s := NewChatSession("New Workout")
	s.Date = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	if got := s.DisplayTitle(); got != "Mar 14, 2025" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Mar 14, 2025")
	}

	s.DayType = "Push"
	if got := s.DisplayTitle(); got != "💪 Push" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "💪 Push")
	}
}
