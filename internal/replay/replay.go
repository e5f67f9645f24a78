package replay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/inamate/snapkit/internal/designer"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
	"github.com/inamate/snapkit/internal/typeid"
)

// Frame is the designer state after a tick or stop step.
type Frame struct {
	Step        int                  `json:"step"`
	Action      string               `json:"action"`
	Dragging    bool                 `json:"dragging"`
	Snapped     bool                 `json:"snapped"`
	Nodes       []designer.NodeState `json:"nodes"`
	SnapLines   int                  `json:"snapLines"`
	SpaceBlocks int                  `json:"spaceBlocks"`
	Scroll      geometry.Point       `json:"scroll"`
}

type Report struct {
	Name     string           `json:"name"`
	Frames   []Frame          `json:"frames"`
	Guides   []designer.Guide `json:"guides"`
	Document *tree.Document   `json:"document"`
}

// frameStep is the simulated time between ticks.
const frameStep = 16 * time.Millisecond

func Run(s *Scenario) (*Report, error) {
	d := designer.New(designer.Options{WorkspaceID: typeid.NewWorkspaceID()})
	defer d.Close()

	if err := loadDocument(d, s); err != nil {
		return nil, err
	}
	if vp := s.Viewport; vp != nil {
		scroll := geometry.Point{}
		if len(vp.Scroll) == 2 {
			scroll = point(vp.Scroll)
		}
		d.SetViewport(rect(vp.Rect), scroll)
	}
	for _, g := range s.Guides {
		if !d.AddGuide(guide(g)) {
			return nil, fmt.Errorf("guide %q: not horizontal or vertical, or duplicate id", g.ID)
		}
	}

	report := &Report{Name: s.Name, Frames: []Frame{}}
	now := time.Unix(0, 0)
	var dragged []string
	for i, st := range s.Steps {
		step := i + 1
		switch st.Action {
		case ActionStart:
			if err := d.DragStart(st.Type, st.Direction, st.Nodes, point(st.At)); err != nil {
				return nil, fmt.Errorf("step %d: %w", step, err)
			}
			if !d.Dragging() {
				slog.Warn("drag did not start", "step", step, "nodes", st.Nodes)
			}
			dragged = dragged[:0]
			for _, n := range d.State().Nodes {
				dragged = append(dragged, n.ID)
			}
		case ActionMove:
			d.DragMove(point(st.At))
		case ActionTick:
			frames := max(st.Frames, 1)
			for range frames {
				now = now.Add(frameStep)
				d.Tick(now)
			}
			report.Frames = append(report.Frames, capture(d, step, st.Action, dragged))
		case ActionStop:
			d.DragStop()
			report.Frames = append(report.Frames, capture(d, step, st.Action, dragged))
		case ActionGuideAdd:
			if !d.AddGuide(guide(*st.Guide)) {
				slog.Warn("guide rejected", "step", step, "guide", st.Guide.ID)
			}
		case ActionGuideRemove:
			d.RemoveGuide(st.Guide.ID)
		}
	}

	report.Guides = d.Guides()
	report.Document = d.Document()
	return report, nil
}

// capture records the designer state. Outside a drag the nodes of the last
// drag are reported at their committed geometry.
func capture(d *designer.Designer, step int, action string, dragged []string) Frame {
	st := d.State()
	if !st.Dragging {
		for _, id := range dragged {
			st.Nodes = append(st.Nodes, designer.NodeState{ID: id, Rect: d.SelectionBounds([]string{id})})
		}
	}
	return Frame{
		Step:        step,
		Action:      action,
		Dragging:    st.Dragging,
		Snapped:     st.Snapped,
		Nodes:       st.Nodes,
		SnapLines:   len(st.ClosestSnapLines),
		SpaceBlocks: len(st.ClosestSpaceBlocks),
		Scroll:      st.Scroll,
	}
}

func loadDocument(d *designer.Designer, s *Scenario) error {
	doc := s.Document
	switch {
	case doc.Sample:
		d.LoadSampleDocument(typeid.NewDocumentID())
		return nil
	case doc.File != "":
		path := doc.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		return d.LoadDocument(string(data))
	}

	width, height := doc.Width, doc.Height
	if width <= 0 || height <= 0 {
		width, height = 1000, 1000
	}
	rootID := typeid.NewNodeID()
	td := tree.NewEmptyDocument(typeid.NewDocumentID(), s.Name, rootID, width, height)
	root := td.Nodes[rootID]
	for _, n := range doc.Nodes {
		r := rect(n.Rect)
		root.Children = append(root.Children, n.ID)
		td.Nodes[n.ID] = tree.NodeRecord{
			ID:        n.ID,
			Parent:    &rootID,
			Translate: geometry.Point{X: r.X, Y: r.Y},
			Size:      geometry.Size{Width: r.Width, Height: r.Height},
			Scale:     1,
			Designer:  tree.AllCapabilities,
		}
	}
	td.Nodes[rootID] = root

	data, err := json.Marshal(td)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return d.LoadDocument(string(data))
}

func point(v []float64) geometry.Point {
	return geometry.Point{X: v[0], Y: v[1]}
}

func rect(v []float64) geometry.Rect {
	return geometry.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
}

func guide(g Guide) designer.Guide {
	id := g.ID
	if id == "" {
		id = typeid.NewGuideID()
	}
	return designer.Guide{ID: id, Start: point(g.Start), End: point(g.End)}
}
