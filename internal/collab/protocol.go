package collab

import (
	"encoding/json"

	"github.com/inamate/snapkit/internal/designer"
	"github.com/inamate/snapkit/internal/geometry"
)

type Message struct {
	Type        string          `json:"type"`
	SessionID   string          `json:"sessionId,omitempty"`
	WorkspaceID string          `json:"workspaceId,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client -> server
	TypeDocLoad     = "doc.load"
	TypeDragStart   = "drag.start"
	TypeDragMove    = "drag.move"
	TypeDragStop    = "drag.stop"
	TypeGuideAdd    = "guide.add"
	TypeGuideRemove = "guide.remove"
	TypeViewportSet = "viewport.set"
	TypeOutlineSet  = "outline.set"

	// Server -> client
	TypeWelcome        = "welcome"
	TypeState          = "state"
	TypeViewportScroll = "viewport.scroll"
	TypeError          = "error"
)

type DocLoadPayload struct {
	Document json.RawMessage `json:"document,omitempty"`
	// Sample loads the built-in sample page when no document is given.
	Sample bool `json:"sample,omitempty"`
}

type DragStartPayload struct {
	Type      string   `json:"type"`
	Direction string   `json:"direction,omitempty"`
	NodeIDs   []string `json:"nodeIds,omitempty"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
}

type PointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GuideRemovePayload struct {
	ID string `json:"id"`
}

type ViewportSetPayload struct {
	Rect   geometry.Rect  `json:"rect"`
	Scroll geometry.Point `json:"scroll"`
}

type OutlineSetPayload struct {
	Rect    geometry.Rect `json:"rect"`
	Content geometry.Size `json:"content"`
}

type WelcomePayload struct {
	SessionID   string           `json:"sessionId"`
	WorkspaceID string           `json:"workspaceId"`
	Subject     string           `json:"subject,omitempty"`
	Guides      []designer.Guide `json:"guides"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}

func newMessage(msgType string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Payload: data}, nil
}
