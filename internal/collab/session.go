package collab

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inamate/snapkit/internal/designer"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/store"
	"github.com/inamate/snapkit/internal/typeid"
)

// guideEvent is a guide change made by another session of the room.
type guideEvent struct {
	added   *designer.Guide
	removed string
}

// Session is the actor that owns one designer. Every designer call happens
// on the Run goroutine; other goroutines talk to it through Deliver and the
// hub's guide broadcasts.
type Session struct {
	ID          string
	WorkspaceID string
	Subject     string

	hub      *Hub
	designer *designer.Designer
	send     func(*Message)
	interval time.Duration

	inbox  chan *Message
	remote chan guideEvent
	done   chan struct{}
	once   sync.Once

	dirty      bool
	lastScroll geometry.Point
}

func newSession(hub *Hub, workspaceID, subject string, send func(*Message)) *Session {
	s := &Session{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Subject:     subject,
		hub:         hub,
		send:        send,
		interval:    hub.opts.FrameInterval,
		inbox:       make(chan *Message, 64),
		remote:      make(chan guideEvent, 64),
		done:        make(chan struct{}),
	}
	s.designer = designer.New(designer.Options{
		WorkspaceID:    workspaceID,
		MaxScrollSpeed: hub.opts.MaxScrollSpeed,
	})
	s.designer.OnChange(func() { s.dirty = true })
	return s
}

// Deliver queues a client message. It reports false once the session has
// stopped.
func (s *Session) Deliver(ctx context.Context, msg *Message) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- msg:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Stop ends Run. Safe to call more than once and from any goroutine.
func (s *Session) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *Session) Run(ctx context.Context) {
	s.hub.Register(s)
	defer s.hub.Unregister(s)
	defer s.designer.Close()

	s.start(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case msg := <-s.inbox:
			s.handle(ctx, msg)
		case ev := <-s.remote:
			s.applyRemote(ev)
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Session) start(ctx context.Context) {
	guides, err := s.hub.Guides(ctx, s.WorkspaceID)
	if err != nil {
		slog.Warn("load guides", "error", err, "workspace", s.WorkspaceID)
	}
	for _, g := range guides {
		s.designer.AddGuide(g)
	}
	s.reply(TypeWelcome, WelcomePayload{
		SessionID:   s.ID,
		WorkspaceID: s.WorkspaceID,
		Subject:     s.Subject,
		Guides:      s.designer.Guides(),
	})
	slog.Debug("session started", "session", s.ID, "workspace", s.WorkspaceID, "guides", len(guides))
}

func (s *Session) handle(ctx context.Context, msg *Message) {
	switch msg.Type {
	case TypeDocLoad:
		s.handleDocLoad(msg)
	case TypeDragStart:
		s.handleDragStart(msg)
	case TypeDragMove:
		var p PointPayload
		if !s.decode(msg, &p) {
			return
		}
		s.designer.DragMove(geometry.Point{X: p.X, Y: p.Y})
		// applied and reported on the next frame
		return
	case TypeDragStop:
		s.designer.DragStop()
	case TypeGuideAdd:
		s.handleGuideAdd(ctx, msg)
	case TypeGuideRemove:
		s.handleGuideRemove(ctx, msg)
	case TypeViewportSet:
		var p ViewportSetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.designer.SetViewport(p.Rect, p.Scroll)
		s.dirty = true
	case TypeOutlineSet:
		var p OutlineSetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.designer.SetOutline(p.Rect, p.Content)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "session", s.ID)
		s.replyError("unknown message type " + msg.Type)
		return
	}
	s.flush()
}

func (s *Session) handleDocLoad(msg *Message) {
	var p DocLoadPayload
	if !s.decode(msg, &p) {
		return
	}
	if len(p.Document) == 0 {
		if !p.Sample {
			s.replyError("missing document")
			return
		}
		s.designer.LoadSampleDocument(typeid.NewDocumentID())
		return
	}
	if err := s.designer.LoadDocument(string(p.Document)); err != nil {
		slog.Warn("load document", "error", err, "session", s.ID)
		s.replyError(err.Error())
	}
}

func (s *Session) handleDragStart(msg *Message) {
	var p DragStartPayload
	if !s.decode(msg, &p) {
		return
	}
	client := geometry.Point{X: p.X, Y: p.Y}
	ids := p.NodeIDs
	if len(ids) == 0 {
		if hit := s.designer.HitTest(client); hit != "" {
			ids = []string{hit}
		}
	}
	if err := s.designer.DragStart(p.Type, p.Direction, ids, client); err != nil {
		slog.Warn("drag start rejected", "error", err, "session", s.ID)
		s.replyError(err.Error())
	}
}

func (s *Session) handleGuideAdd(ctx context.Context, msg *Message) {
	var g designer.Guide
	if !s.decode(msg, &g) {
		return
	}
	if g.ID == "" {
		g.ID = typeid.NewGuideID()
	}
	if !s.designer.AddGuide(g) {
		s.replyError("invalid guide " + g.ID)
		return
	}
	if err := s.hub.AddGuide(ctx, s.WorkspaceID, s, g); err != nil {
		slog.Warn("persist guide", "error", err, "guide", g.ID, "workspace", s.WorkspaceID)
	}
}

func (s *Session) handleGuideRemove(ctx context.Context, msg *Message) {
	var p GuideRemovePayload
	if !s.decode(msg, &p) {
		return
	}
	if !s.designer.RemoveGuide(p.ID) {
		s.replyError("unknown guide " + p.ID)
		return
	}
	if err := s.hub.RemoveGuide(ctx, s.WorkspaceID, s, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Warn("delete guide", "error", err, "guide", p.ID, "workspace", s.WorkspaceID)
	}
}

func (s *Session) applyRemote(ev guideEvent) {
	switch {
	case ev.added != nil:
		s.designer.AddGuide(*ev.added)
	case ev.removed != "":
		s.designer.RemoveGuide(ev.removed)
	}
	s.flush()
}

func (s *Session) tick(now time.Time) {
	s.designer.Tick(now)
	s.flush()
}

// flush reports scroll and state changes since the last report.
func (s *Session) flush() {
	if scroll := s.designer.Scroll(); scroll != s.lastScroll {
		s.lastScroll = scroll
		s.reply(TypeViewportScroll, PointPayload{X: scroll.X, Y: scroll.Y})
	}
	if !s.dirty {
		return
	}
	s.dirty = false
	s.reply(TypeState, s.designer.State())
}

func (s *Session) decode(msg *Message, v any) bool {
	if len(msg.Payload) == 0 {
		s.replyError("missing payload for " + msg.Type)
		return false
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		slog.Warn("invalid payload", "type", msg.Type, "error", err, "session", s.ID)
		s.replyError("invalid payload for " + msg.Type)
		return false
	}
	return true
}

func (s *Session) reply(msgType string, payload any) {
	out, err := newMessage(msgType, payload)
	if err != nil {
		slog.Error("marshal message", "type", msgType, "error", err)
		return
	}
	out.SessionID = s.ID
	out.WorkspaceID = s.WorkspaceID
	s.send(out)
}

func (s *Session) replyError(reason string) {
	s.reply(TypeError, ErrorPayload{Reason: reason})
}
