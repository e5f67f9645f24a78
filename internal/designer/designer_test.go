package designer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/inamate/snapkit/internal/event"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/tree"
	"github.com/inamate/snapkit/internal/workspace"
)

func documentJSON(t *testing.T, width, height float64, rects map[string]geometry.Rect) string {
	t.Helper()
	rootID := "root"
	doc := tree.NewEmptyDocument("doc", "test", rootID, width, height)
	root := doc.Nodes[rootID]
	for _, id := range []string{"a", "b", "c"} {
		r, ok := rects[id]
		if !ok {
			continue
		}
		root.Children = append(root.Children, id)
		doc.Nodes[id] = tree.NodeRecord{
			ID:        id,
			Parent:    &rootID,
			Translate: geometry.Point{X: r.X, Y: r.Y},
			Size:      geometry.Size{Width: r.Width, Height: r.Height},
			Scale:     1,
			Designer:  tree.AllCapabilities,
		}
	}
	doc.Nodes[rootID] = root
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return string(data)
}

func newDesigner(t *testing.T, width, height float64, rects map[string]geometry.Rect) *Designer {
	t.Helper()
	d := New(Options{WorkspaceID: "ws"})
	t.Cleanup(d.Close)
	if err := d.LoadDocument(documentJSON(t, width, height, rects)); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	return d
}

func TestDesigner_TranslateCoalescesAndSnaps(t *testing.T) {
	d := newDesigner(t, 1000, 1000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
		"b": {X: 400, Y: 100, Width: 100, Height: 100},
	})

	if err := d.DragStart("translate", "", []string{"a"}, geometry.Point{X: 150, Y: 150}); err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	d.DragMove(geometry.Point{X: 600, Y: 600})
	// 3 short of touching b
	d.DragMove(geometry.Point{X: 347, Y: 150})

	if a := d.tree.FindByID("a"); a.Translate != (geometry.Point{X: 100, Y: 100}) {
		t.Fatalf("moved before the frame: %+v", a.Translate)
	}
	d.Tick(time.Now())

	s := d.State()
	if !s.Dragging || !s.Snapped {
		t.Fatalf("State() dragging = %v, snapped = %v", s.Dragging, s.Snapped)
	}
	if len(s.Nodes) != 1 || s.Nodes[0].Rect != (geometry.Rect{X: 300, Y: 100, Width: 100, Height: 100}) {
		t.Errorf("State().Nodes = %+v, want a at {300 100 100 100}", s.Nodes)
	}
	if got := len(s.ClosestSnapLines); got != 2 {
		t.Errorf("closest snap lines = %d, want one per direction", got)
	}
	if js := d.StateJSON(); !strings.Contains(js, `"closestSnapLines":[{`) {
		t.Errorf("StateJSON() = %s", js)
	}

	d.DragStop()
	if d.Dragging() || d.State().Dragging {
		t.Error("still dragging after DragStop")
	}
	if rec := d.Document().Nodes["a"]; rec.Translate != (geometry.Point{X: 300, Y: 100}) {
		t.Errorf("document translate = %+v, want {300 100}", rec.Translate)
	}
}

func TestDesigner_DragStopFlushesPendingMove(t *testing.T) {
	d := newDesigner(t, 1000, 1000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
	})

	if err := d.DragStart("resize", "right-bottom", []string{"a"}, geometry.Point{X: 200, Y: 200}); err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	d.DragMove(geometry.Point{X: 250, Y: 220})
	d.DragStop()

	a := d.tree.FindByID("a")
	if a.Size != (geometry.Size{Width: 150, Height: 120}) || a.Translate != (geometry.Point{X: 100, Y: 100}) {
		t.Errorf("a = %v, want 150x120 at 100,100", a)
	}
}

func TestDesigner_DragStartRejects(t *testing.T) {
	d := New(Options{})
	defer d.Close()

	if err := d.DragStart("translate", "", []string{"a"}, geometry.Point{}); !errors.Is(err, tree.ErrNoRoot) {
		t.Errorf("DragStart() without a document error = %v, want ErrNoRoot", err)
	}

	d.LoadSampleDocument("doc_sample")
	if err := d.DragStart("skew", "", nil, geometry.Point{}); err == nil {
		t.Error("DragStart() accepted an unknown transform")
	}
	if err := d.DragStart("resize", "sideways", nil, geometry.Point{}); err == nil {
		t.Error("DragStart() accepted an unknown resize handle")
	}
	if err := d.DragStart("translate", "", []string{"missing"}, geometry.Point{}); err != nil {
		t.Errorf("DragStart() with unknown nodes error = %v", err)
	}
	if d.Dragging() {
		t.Error("session started without any draggable node")
	}
	d.DragMove(geometry.Point{X: 10})
	d.DragStop()
}

func TestDesigner_RejectedDragStartKeepsLiveSession(t *testing.T) {
	d := newDesigner(t, 1000, 1000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
	})

	if err := d.DragStart("translate", "", []string{"a"}, geometry.Point{X: 150, Y: 150}); err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	if err := d.DragStart("translate", "", []string{"missing"}, geometry.Point{X: 700, Y: 700}); err != nil {
		t.Fatalf("DragStart() with unknown nodes error = %v", err)
	}
	if !d.Dragging() {
		t.Fatal("rejected DragStart ended the live session")
	}
	if got := d.cursor.Status(); got != workspace.StatusDragging {
		t.Errorf("cursor status = %v, want %v", got, workspace.StatusDragging)
	}
	if got := d.cursor.DragStartPosition(); got != (geometry.Point{X: 150, Y: 150}) {
		t.Errorf("drag start position = %+v, want {150 150}", got)
	}

	d.DragMove(geometry.Point{X: 160, Y: 150})
	d.Tick(time.Now())
	if a := d.tree.FindByID("a"); a.Translate != (geometry.Point{X: 110, Y: 100}) {
		t.Errorf("a translate = %+v, want {110 100}", a.Translate)
	}
}

func TestDesigner_DragStartStopsLiveSession(t *testing.T) {
	d := newDesigner(t, 3000, 3000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
		"b": {X: 400, Y: 100, Width: 100, Height: 100},
	})
	d.SetViewport(geometry.Rect{Width: 800, Height: 600}, geometry.Point{})

	var stops int
	d.bus.Subscribe(event.DragStop, func(event.Event) { stops++ })

	_ = d.DragStart("translate", "", []string{"a"}, geometry.Point{X: 150, Y: 150})
	d.DragMove(geometry.Point{X: 790, Y: 150})
	for range 3 {
		d.Tick(time.Now())
	}
	if d.State().Scroll.X <= 0 {
		t.Fatal("viewport did not start scrolling")
	}

	if err := d.DragStart("translate", "", []string{"b"}, geometry.Point{X: 450, Y: 150}); err != nil {
		t.Fatalf("DragStart() error = %v", err)
	}
	if stops != 1 {
		t.Errorf("DragStop published %d times, want 1", stops)
	}
	if nodes := d.helper.DragNodes(); len(nodes) != 1 || nodes[0].ID != "b" {
		t.Fatalf("drag nodes = %v, want [b]", nodes)
	}

	scrolled := d.State().Scroll
	d.Tick(time.Now())
	d.Tick(time.Now())
	if got := d.State().Scroll; got != scrolled {
		t.Errorf("scroll kept moving after restart: %v -> %v", scrolled, got)
	}
	if b := d.tree.FindByID("b"); b.Translate != (geometry.Point{X: 400, Y: 100}) {
		t.Errorf("b translate = %+v, want {400 100}", b.Translate)
	}
}

func TestDesigner_LoadDocumentErrors(t *testing.T) {
	d := New(Options{})
	defer d.Close()

	if err := d.LoadDocument("{"); err == nil {
		t.Error("LoadDocument() accepted malformed JSON")
	}
	if err := d.LoadDocument(`{"root":"nope","nodes":{}}`); !errors.Is(err, tree.ErrNoRoot) {
		t.Errorf("LoadDocument() error = %v, want ErrNoRoot", err)
	}
	if got := d.DocumentJSON(); got != "{}" {
		t.Errorf("DocumentJSON() = %s, want {}", got)
	}
}

func TestDesigner_GuidesSnapAndSurviveReload(t *testing.T) {
	rects := map[string]geometry.Rect{"a": {X: 100, Y: 100, Width: 100, Height: 100}}
	d := newDesigner(t, 1000, 1000, rects)

	changes := 0
	d.OnChange(func() { changes++ })

	guide := Guide{ID: "g", Start: geometry.Point{X: 0, Y: 404}, End: geometry.Point{X: 1000, Y: 404}}
	if !d.AddGuide(guide) {
		t.Fatal("AddGuide() rejected a horizontal guide")
	}
	if d.AddGuide(guide) {
		t.Error("AddGuide() accepted a duplicate id")
	}
	if d.AddGuide(Guide{ID: "slanted", Start: geometry.Point{}, End: geometry.Point{X: 3, Y: 4}}) {
		t.Error("AddGuide() accepted a slanted guide")
	}
	if changes != 1 {
		t.Errorf("OnChange ran %d times, want 1", changes)
	}

	if err := d.LoadDocument(documentJSON(t, 1000, 1000, rects)); err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if got := d.State().Guides; len(got) != 1 || got[0].ID != "g" {
		t.Fatalf("guides after reload = %+v", got)
	}

	// bottom edge lands 2 past the guide
	_ = d.DragStart("translate", "", []string{"a"}, geometry.Point{X: 150, Y: 150})
	d.DragMove(geometry.Point{X: 150, Y: 356})
	d.Tick(time.Now())
	if a := d.tree.FindByID("a"); a.Translate != (geometry.Point{X: 100, Y: 304}) {
		t.Errorf("a translate = %+v, want snapped to {100 304}", a.Translate)
	}
	d.DragStop()

	if !d.RemoveGuide("g") || d.RemoveGuide("g") {
		t.Error("RemoveGuide() should remove once")
	}
	if len(d.Guides()) != 0 {
		t.Errorf("Guides() = %+v, want none", d.Guides())
	}
}

func TestDesigner_AutoScrollFollowsDrag(t *testing.T) {
	d := newDesigner(t, 3000, 3000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
	})
	d.SetViewport(geometry.Rect{Width: 800, Height: 600}, geometry.Point{})

	_ = d.DragStart("translate", "", []string{"a"}, geometry.Point{X: 150, Y: 150})
	d.DragMove(geometry.Point{X: 790, Y: 150})
	for range 3 {
		d.Tick(time.Now())
	}

	scrolled := d.State().Scroll.X
	if scrolled <= 0 {
		t.Fatalf("viewport did not scroll: %v", scrolled)
	}
	a := d.tree.FindByID("a")
	if a.Translate.X <= 100+640 {
		t.Errorf("a x = %v, want it to follow the scroll past %v", a.Translate.X, 100+640)
	}

	d.DragStop()
	d.Tick(time.Now())
	d.Tick(time.Now())
	if got := d.State().Scroll.X; got != scrolled {
		t.Errorf("scroll kept moving after DragStop: %v -> %v", scrolled, got)
	}
}

func TestDesigner_Queries(t *testing.T) {
	d := newDesigner(t, 1000, 1000, map[string]geometry.Rect{
		"a": {X: 100, Y: 100, Width: 100, Height: 100},
		"b": {X: 400, Y: 100, Width: 100, Height: 50},
	})
	d.SetViewport(geometry.Rect{X: 50, Y: 20, Width: 500, Height: 500}, geometry.Point{X: 10})

	// client 100,100 is offset 60,80
	if got := d.HitTest(geometry.Point{X: 100, Y: 100}); got != "" {
		t.Errorf("HitTest() = %q, want empty canvas", got)
	}
	if got := d.HitTest(geometry.Point{X: 150, Y: 130}); got != "a" {
		t.Errorf("HitTest() = %q, want a", got)
	}
	if got := d.SelectionBounds([]string{"a", "b"}); got != (geometry.Rect{X: 100, Y: 100, Width: 400, Height: 100}) {
		t.Errorf("SelectionBounds() = %+v", got)
	}
	if s := d.State(); s.Dragging || s.Nodes == nil || s.ClosestSnapLines == nil {
		t.Errorf("idle State() = %+v", s)
	}
}
