package tree

import (
	"testing"

	"github.com/inamate/snapkit/internal/geometry"
)

func newTestDocument() *Document {
	root := "root"
	group := "group"
	doc := NewEmptyDocument("doc", "test", root, 1000, 800)
	r := doc.Nodes[root]
	r.Children = []string{"a", group, "locked"}
	doc.Nodes[root] = r

	doc.Nodes["a"] = NodeRecord{ID: "a", Parent: &root, Translate: geometry.Point{X: 10, Y: 20}, Size: geometry.Size{Width: 100, Height: 50}, Designer: AllCapabilities}
	doc.Nodes[group] = NodeRecord{ID: group, Parent: &root, Children: []string{"b", "missing"}, Translate: geometry.Point{X: 300, Y: 300}, Size: geometry.Size{Width: 200, Height: 200}, Designer: Capabilities{Translatable: true}}
	doc.Nodes["b"] = NodeRecord{ID: "b", Parent: &group, Translate: geometry.Point{X: 20, Y: 30}, Size: geometry.Size{Width: 40, Height: 40}, Designer: AllCapabilities}
	doc.Nodes["locked"] = NodeRecord{ID: "locked", Parent: &root, Translate: geometry.Point{X: 600, Y: 0}, Size: geometry.Size{Width: 10, Height: 10}, Locked: true, Designer: AllCapabilities}
	return doc
}

func TestBuild(t *testing.T) {
	tr, err := Build(newTestDocument())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var order []string
	tr.EachTree(func(n *Node) { order = append(order, n.ID) })
	want := []string{"root", "a", "group", "b", "locked"}
	if len(order) != len(want) {
		t.Fatalf("EachTree visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("EachTree[%d] = %q, want %q", i, order[i], want[i])
		}
	}

	if _, err := Build(&Document{Root: "nope"}); err != ErrNoRoot {
		t.Errorf("Build() without root error = %v, want ErrNoRoot", err)
	}
}

func TestNode_OffsetRect(t *testing.T) {
	tr, _ := Build(newTestDocument())

	type tc struct {
		id   string
		want geometry.Rect
		ok   bool
	}

	tests := map[string]tc{
		"top level node": {
			id:   "a",
			want: geometry.Rect{X: 10, Y: 20, Width: 100, Height: 50},
			ok:   true,
		},
		"nested node is offset by its parent": {
			id:   "b",
			want: geometry.Rect{X: 320, Y: 330, Width: 40, Height: 40},
			ok:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := tr.FindByID(tt.id).OffsetRect()
			if ok != tt.ok || got != tt.want {
				t.Errorf("OffsetRect() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	tr.FindByID("group").Hidden = true
	if _, ok := tr.FindByID("b").OffsetRect(); ok {
		t.Error("node under a hidden parent should not be measurable")
	}
	if got := tr.FindByID("b").ValidOffsetRect(); got != (geometry.Rect{}) {
		t.Errorf("ValidOffsetRect() = %+v, want zero rect", got)
	}
}

func TestNode_OffsetRectRotated(t *testing.T) {
	tr, _ := Build(newTestDocument())
	a := tr.FindByID("a")
	a.Rotate = 90

	got := a.ValidOffsetRect()
	// 100x50 rotated around its center (60, 45) becomes 50x100.
	if diff(got.X, 35) || diff(got.Y, -5) || diff(got.Width, 50) || diff(got.Height, 100) {
		t.Errorf("rotated OffsetRect() = %+v", got)
	}
}

func diff(a, b float64) bool {
	d := a - b
	return d > 1e-9 || d < -1e-9
}

func TestFilters(t *testing.T) {
	tr, _ := Build(newTestDocument())
	nodes := tr.FindAll([]string{"root", "a", "group", "b", "locked", "unknown"})

	if got := len(nodes); got != 5 {
		t.Fatalf("FindAll() returned %d nodes, want 5", got)
	}

	type tc struct {
		filter func([]*Node) []*Node
		want   []string
	}

	tests := map[string]tc{
		"translatable excludes root and locked": {filter: FilterTranslatable, want: []string{"a", "group", "b"}},
		"resizable needs the capability":        {filter: FilterResizable, want: []string{"a", "b"}},
		"rotatable":                             {filter: FilterRotatable, want: []string{"a", "b"}},
		"scalable":                              {filter: FilterScalable, want: []string{"a", "b"}},
		"roundable":                             {filter: FilterRoundable, want: []string{"a", "b"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.filter(nodes)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i, n := range got {
				if n.ID != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, n.ID, tt.want[i])
				}
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	tr, _ := Build(newTestDocument())

	if hit := tr.HitTest(geometry.Point{X: 330, Y: 340}); hit == nil || hit.ID != "b" {
		t.Errorf("HitTest() inside nested node = %v, want b", hit)
	}
	if hit := tr.HitTest(geometry.Point{X: 450, Y: 450}); hit == nil || hit.ID != "group" {
		t.Errorf("HitTest() inside group = %v, want group", hit)
	}
	if hit := tr.HitTest(geometry.Point{X: 900, Y: 700}); hit != nil {
		t.Errorf("HitTest() on empty canvas = %v, want nil", hit)
	}
}

func TestDocumentRoundTripsGeometry(t *testing.T) {
	tr, _ := Build(newTestDocument())
	tr.FindByID("a").SetRect(geometry.Rect{X: 1, Y: 2, Width: -5, Height: 7})

	rec := tr.Document().Nodes["a"]
	if rec.Translate != (geometry.Point{X: 1, Y: 2}) || rec.Size != (geometry.Size{Width: 0, Height: 7}) {
		t.Errorf("Document() record = %+v", rec)
	}
}

func TestNewSampleDocument(t *testing.T) {
	tr, err := Build(NewSampleDocument("doc_sample"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := len(tr.NodesByID); got != 6 {
		t.Errorf("sample has %d nodes, want 6", got)
	}
}
