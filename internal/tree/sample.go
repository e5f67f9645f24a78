package tree

import (
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/typeid"
)

// NewSampleDocument builds a small page: a header, three cards in a row
// spaced 40 apart and a locked footer.
func NewSampleDocument(docID string) *Document {
	rootID := typeid.NewNodeID()
	headerID := typeid.NewNodeID()
	footerID := typeid.NewNodeID()
	cardIDs := []string{typeid.NewNodeID(), typeid.NewNodeID(), typeid.NewNodeID()}

	doc := NewEmptyDocument(docID, "Untitled", rootID, 1280, 720)
	root := doc.Nodes[rootID]
	root.Children = append([]string{headerID}, cardIDs...)
	root.Children = append(root.Children, footerID)
	doc.Nodes[rootID] = root

	rootIDPtr := &rootID
	doc.Nodes[headerID] = NodeRecord{
		ID:        headerID,
		Parent:    rootIDPtr,
		Children:  []string{},
		Translate: geometry.Point{X: 80, Y: 40},
		Size:      geometry.Size{Width: 1120, Height: 80},
		Scale:     1,
		Designer:  AllCapabilities,
	}
	for i, id := range cardIDs {
		doc.Nodes[id] = NodeRecord{
			ID:        id,
			Parent:    rootIDPtr,
			Children:  []string{},
			Translate: geometry.Point{X: 80 + float64(i)*400, Y: 200},
			Size:      geometry.Size{Width: 360, Height: 240},
			Scale:     1,
			Radius:    8,
			Designer:  AllCapabilities,
		}
	}
	doc.Nodes[footerID] = NodeRecord{
		ID:        footerID,
		Parent:    rootIDPtr,
		Children:  []string{},
		Translate: geometry.Point{X: 80, Y: 600},
		Size:      geometry.Size{Width: 1120, Height: 60},
		Scale:     1,
		Locked:    true,
		Designer:  AllCapabilities,
	}
	return doc
}
