package collab

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/snapkit/internal/designer"
)

// GuideStore persists ruler guides per workspace.
type GuideStore interface {
	List(ctx context.Context, workspaceID string) ([]designer.Guide, error)
	Save(ctx context.Context, workspaceID string, g designer.Guide) error
	Delete(ctx context.Context, workspaceID, guideID string) error
}

type Options struct {
	FrameInterval  time.Duration
	MaxScrollSpeed float64
}

type Room struct {
	workspaceID string
	sessions    map[string]*Session // sessionID -> session
}

func NewRoom(workspaceID string) *Room {
	return &Room{
		workspaceID: workspaceID,
		sessions:    make(map[string]*Session),
	}
}

// Hub groups sessions by workspace so guide changes made in one session
// reach the others and the store.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // workspaceID -> room
	register   chan *Session
	unregister chan *Session
	quit       chan struct{}
	stopOnce   sync.Once

	store GuideStore
	opts  Options
}

func NewHub(store GuideStore, opts Options) *Hub {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		quit:       make(chan struct{}),
		store:      store,
		opts:       opts,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.addSession(s)
		case s := <-h.unregister:
			h.removeSession(s)
		case <-h.quit:
			return
		}
	}
}

// NewSession creates a session for a workspace. Replies go to send, which
// must not block.
func (h *Hub) NewSession(workspaceID, subject string, send func(*Message)) *Session {
	return newSession(h, workspaceID, subject, send)
}

func (h *Hub) Register(s *Session) {
	select {
	case h.register <- s:
	case <-h.quit:
	}
}

func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.quit:
	}
}

// Stop ends the run loop and every live session.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, room := range h.rooms {
		for _, s := range room.sessions {
			s.Stop()
		}
	}
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	room, ok := h.rooms[s.WorkspaceID]
	if !ok {
		room = NewRoom(s.WorkspaceID)
		h.rooms[s.WorkspaceID] = room
	}
	room.sessions[s.ID] = s
	h.mu.Unlock()

	slog.Info("session joined", "session", s.ID, "subject", s.Subject, "workspace", s.WorkspaceID)
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[s.WorkspaceID]
	if !ok {
		return
	}
	delete(room.sessions, s.ID)
	if len(room.sessions) == 0 {
		delete(h.rooms, s.WorkspaceID)
	}

	slog.Info("session left", "session", s.ID, "workspace", s.WorkspaceID)
}

// SessionCount is the number of live sessions in a workspace.
func (h *Hub) SessionCount(workspaceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room, ok := h.rooms[workspaceID]; ok {
		return len(room.sessions)
	}
	return 0
}

func (h *Hub) Guides(ctx context.Context, workspaceID string) ([]designer.Guide, error) {
	guides, err := h.store.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	return guides, nil
}

// AddGuide persists g and hands it to every session of the workspace
// except from, which may be nil.
func (h *Hub) AddGuide(ctx context.Context, workspaceID string, from *Session, g designer.Guide) error {
	if err := h.store.Save(ctx, workspaceID, g); err != nil {
		return fmt.Errorf("save guide: %w", err)
	}
	h.broadcastToRoom(workspaceID, guideEvent{added: &g}, from)
	return nil
}

func (h *Hub) RemoveGuide(ctx context.Context, workspaceID string, from *Session, guideID string) error {
	if err := h.store.Delete(ctx, workspaceID, guideID); err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}
	h.broadcastToRoom(workspaceID, guideEvent{removed: guideID}, from)
	return nil
}

func (h *Hub) broadcastToRoom(workspaceID string, ev guideEvent, exclude *Session) {
	h.mu.RLock()
	room, ok := h.rooms[workspaceID]
	if !ok {
		h.mu.RUnlock()
		return
	}
	sessions := make([]*Session, 0, len(room.sessions))
	for _, s := range room.sessions {
		if s != exclude {
			sessions = append(sessions, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		select {
		case s.remote <- ev:
		default:
			slog.Warn("session guide buffer full, dropping update", "session", s.ID)
		}
	}
}
