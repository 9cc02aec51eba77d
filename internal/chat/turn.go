package chat

import (
	"context"
	"strings"
	"time"

	"github.com/claude/spotme/internal/models"
	"github.com/google/uuid"
)

const (
	// fallbackMessage is the only error text a user ever sees.
	fallbackMessage = "Sorry, I had trouble processing that. Could you try again? 💪"

	// saveWarningMessage is appended when the reply arrived but the workout
	// could not be persisted.
	saveWarningMessage = "Heads up — I couldn't save that workout, so it may be missing from your history. 💾"
)

// SendMessage runs one conversation turn: append the user message, call the
// model with recent-workout context, persist any extracted workout, and
// append the assistant reply. The returned message is the assistant's.
//
// At most one turn per session may be in flight; overlapping sends fail with
// ErrTurnInFlight. The reply is routed by the session id captured here, so a
// session deleted mid-flight simply drops its late reply.
func (m *Manager) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	m.mu.Lock()
	sess := m.findLocked(sessionID)
	if sess == nil {
		m.mu.Unlock()
		return models.ChatMessage{}, ErrSessionNotFound
	}
	if m.inFlight[sessionID] {
		m.mu.Unlock()
		return models.ChatMessage{}, ErrTurnInFlight
	}
	m.inFlight[sessionID] = true
	m.typing[sessionID] = true

	userMsg := models.NewChatMessage(text, true)
	sess.AddMessage(userMsg)
	m.notifyLocked(Event{SessionID: sessionID, Message: userMsg})
	m.mu.Unlock()

	// The model call is the turn's only suspension point; no locks are held
	// across it.
	reply, dayType := m.runTurn(ctx, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, sessionID)
	delete(m.typing, sessionID)

	sess = m.findLocked(sessionID)
	if sess == nil {
		m.log.Info("dropping reply for deleted session", "session_id", sessionID)
		return models.ChatMessage{}, ErrSessionNotFound
	}

	sess.AddMessage(reply)
	if dayType != "" && sess.DayType == "" {
		sess.DayType = dayType
	}
	m.notifyLocked(Event{SessionID: sessionID, Message: reply})
	return reply, nil
}

// runTurn produces the assistant message and the extracted day type, if any.
// All failures collapse into the fixed fallback text; the raw error is kept
// for diagnostics only.
func (m *Manager) runTurn(ctx context.Context, text string) (models.ChatMessage, string) {
	recent, err := m.gw.FetchRecentWorkouts(ctx, contextDays)
	if err != nil {
		// Missing context degrades the prompt, not the turn.
		m.log.Warn("fetching workout context failed", "error", err)
		recent = nil
	}

	resp, err := m.ai.SendMessage(ctx, text, recent)
	if err != nil {
		m.recordError(err)
		return models.NewChatMessage(fallbackMessage, false), ""
	}

	content := resp.Message
	dayType := ""
	if resp.WorkoutData != nil {
		dayType = resp.WorkoutData.DayType
		if len(resp.WorkoutData.Exercises) > 0 {
			if _, err := m.gw.LogWorkout(ctx, *resp.WorkoutData, time.Now()); err != nil {
				m.recordError(err)
				content += "\n\n" + saveWarningMessage
			} else {
				m.log.Info("workout logged",
					"exercises", len(resp.WorkoutData.Exercises),
					"day_type", resp.WorkoutData.DayType)
			}
		}
	}

	return models.NewChatMessage(content, false), dayType
}

func (m *Manager) recordError(err error) {
	m.log.Error("turn failed", "error", err)
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}
