package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/spotme/internal/ai"
	"github.com/claude/spotme/internal/models"
	"github.com/google/uuid"
)

// Gateway is the persistence seam the coordinator needs. *storage.DB
// satisfies it; tests substitute fakes.
type Gateway interface {
	FetchRecentWorkouts(ctx context.Context, days int) ([]models.Workout, error)
	LogWorkout(ctx context.Context, data models.WorkoutData, date time.Time) (*models.Workout, error)
}

var (
	// ErrEmptyMessage rejects whitespace-only input before a turn starts.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTurnInFlight rejects a send while the session already has a pending
	// turn. One turn per session at a time.
	ErrTurnInFlight = errors.New("a reply is already pending for this session")

	// ErrSessionNotFound means the session id does not exist (or was deleted
	// while a reply was in flight).
	ErrSessionNotFound = errors.New("session not found")
)

const (
	// NewSessionTitle is the title of a freshly created session.
	NewSessionTitle = "New Workout"

	// contextDays is the history window digested into the model prompt.
	contextDays = 7
)

// Event is emitted whenever a message is appended to a session transcript.
type Event struct {
	SessionID uuid.UUID
	Message   models.ChatMessage
}

// Manager owns all chat session state. Every mutation goes through its mutex,
// which stands in for the original design's UI-thread affinity; the
// presentation layer observes via Subscribe. Sessions live in memory only —
// transcripts do not survive a restart.
type Manager struct {
	gw  Gateway
	ai  ai.Service
	log *slog.Logger

	mu       sync.Mutex
	sessions []*models.ChatSession
	selected uuid.UUID
	typing   map[uuid.UUID]bool
	inFlight map[uuid.UUID]bool
	subs     map[int]chan Event
	nextSub  int
	lastErr  error
}

// NewManager creates a manager with one empty session selected, so the
// session list is never empty.
func NewManager(gw Gateway, svc ai.Service, log *slog.Logger) *Manager {
	m := &Manager{
		gw:       gw,
		ai:       svc,
		log:      log,
		typing:   make(map[uuid.UUID]bool),
		inFlight: make(map[uuid.UUID]bool),
		subs:     make(map[int]chan Event),
	}
	m.mu.Lock()
	m.startSessionLocked()
	m.mu.Unlock()
	return m
}

// StartSession creates a new empty session, inserts it first, and selects it.
func (m *Manager) StartSession() models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.startSessionLocked()
}

func (m *Manager) startSessionLocked() *models.ChatSession {
	s := models.NewChatSession(NewSessionTitle)
	m.sessions = append([]*models.ChatSession{s}, m.sessions...)
	m.selected = s.ID
	return s
}

// DeleteSession removes a session. Deleting the selected session moves the
// selection to the newest remaining one; deleting the last session creates a
// fresh empty one.
func (m *Manager) DeleteSession(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.sessions = kept

	if m.selected == id {
		if len(m.sessions) > 0 {
			m.selected = m.sessions[0].ID
		}
	}
	if len(m.sessions) == 0 {
		m.startSessionLocked()
	}
}

// Sessions returns a snapshot of all sessions, newest first.
func (m *Manager) Sessions() []models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ChatSession, len(m.sessions))
	for i, s := range m.sessions {
		out[i] = m.snapshotLocked(s)
	}
	return out
}

// Session returns a snapshot of one session.
func (m *Manager) Session(id uuid.UUID) (models.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.findLocked(id)
	if s == nil {
		return models.ChatSession{}, false
	}
	return m.snapshotLocked(s), true
}

// Selected returns the currently selected session.
func (m *Manager) Selected() models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.findLocked(m.selected); s != nil {
		return m.snapshotLocked(s)
	}
	return models.ChatSession{}
}

// Typing reports whether a reply is pending for the session.
func (m *Manager) Typing(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.typing[id]
}

// LastError returns the most recent turn error, kept for diagnostics. Users
// only ever see the fixed fallback message.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Subscribe returns a channel of transcript events and a cancel function.
// Slow subscribers drop events rather than stall the coordinator.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Event, 16)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (m *Manager) findLocked(id uuid.UUID) *models.ChatSession {
	for _, s := range m.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (m *Manager) snapshotLocked(s *models.ChatSession) models.ChatSession {
	out := *s
	out.Messages = append([]models.ChatMessage(nil), s.Messages...)
	return out
}

func (m *Manager) notifyLocked(ev Event) {
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
