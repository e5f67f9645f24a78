package tree

import "github.com/inamate/snapkit/internal/geometry"

// Document is the serialized layout a designer session edits.
type Document struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Root   string                `json:"root"`
	Width  float64               `json:"width"`
	Height float64               `json:"height"`
	Nodes  map[string]NodeRecord `json:"nodes"`
}

// Capabilities declares which transforms a node accepts.
type Capabilities struct {
	Translatable bool `json:"translatable"`
	Resizable    bool `json:"resizable"`
	Rotatable    bool `json:"rotatable"`
	Scalable     bool `json:"scalable"`
	Roundable    bool `json:"roundable"`
}

// AllCapabilities enables every transform kind.
var AllCapabilities = Capabilities{
	Translatable: true,
	Resizable:    true,
	Rotatable:    true,
	Scalable:     true,
	Roundable:    true,
}

// NodeRecord is a single node of a Document. Translate is relative to the
// parent's origin; Rotate is in degrees around the node center.
type NodeRecord struct {
	ID        string         `json:"id"`
	Parent    *string        `json:"parent"`
	Children  []string       `json:"children"`
	Translate geometry.Point `json:"translate"`
	Size      geometry.Size  `json:"size"`
	Rotate    float64        `json:"rotate"`
	Scale     float64        `json:"scale"`
	Radius    float64        `json:"radius"`
	Hidden    bool           `json:"hidden"`
	Locked    bool           `json:"locked"`
	Designer  Capabilities   `json:"designer"`
}

// NewEmptyDocument creates a document holding only a root frame.
func NewEmptyDocument(docID, name, rootID string, width, height float64) *Document {
	return &Document{
		ID:     docID,
		Name:   name,
		Root:   rootID,
		Width:  width,
		Height: height,
		Nodes: map[string]NodeRecord{
			rootID: {
				ID:       rootID,
				Parent:   nil,
				Children: []string{},
				Size:     geometry.Size{Width: width, Height: height},
				Scale:    1,
			},
		},
	}
}
