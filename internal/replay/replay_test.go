package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inamate/snapkit/internal/geometry"
)

const snapScenario = `
name = "snap to neighbour"

[document]
width = 1000
height = 1000

[[document.node]]
id = "a"
rect = [100, 100, 100, 100]

[[document.node]]
id = "b"
rect = [400, 100, 100, 100]

[[guide]]
id = "h"
start = [0, 600]
end = [1000, 600]

[[step]]
action = "start"
type = "translate"
nodes = ["a"]
at = [150, 150]

[[step]]
action = "move"
at = [347, 150]

[[step]]
action = "tick"

[[step]]
action = "stop"
`

func TestRun_SnapScenario(t *testing.T) {
	s, err := Parse([]byte(snapScenario))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r, err := Run(s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(r.Frames) != 2 {
		t.Fatalf("frames = %d, want tick and stop", len(r.Frames))
	}
	tick, stop := r.Frames[0], r.Frames[1]
	want := geometry.Rect{X: 300, Y: 100, Width: 100, Height: 100}
	if !tick.Dragging || !tick.Snapped || tick.Nodes[0].Rect != want {
		t.Errorf("tick frame = %+v", tick)
	}
	if stop.Dragging || len(stop.Nodes) != 1 || stop.Nodes[0].Rect != want {
		t.Errorf("stop frame = %+v, want a committed at %v", stop, want)
	}
	if len(r.Guides) != 1 || r.Guides[0].ID != "h" {
		t.Errorf("guides = %+v", r.Guides)
	}
	if rec := r.Document.Nodes["a"]; rec.Translate != (geometry.Point{X: 300, Y: 100}) {
		t.Errorf("document a = %+v", rec.Translate)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"snap to neighbour", "snapped", "a [300 100 100×100]", "h "} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Render() output lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"bad toml":        `name = `,
		"short rect":      "[[document.node]]\nid = \"a\"\nrect = [1, 2]",
		"unknown action":  "[[step]]\naction = \"spin\"",
		"move without at": "[[step]]\naction = \"move\"",
		"guide.add bare":  "[[step]]\naction = \"guide.add\"",
		"short guide":     "[[guide]]\nid = \"g\"\nstart = [0]\nend = [1, 1]",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); err == nil {
				t.Error("Parse() accepted an invalid scenario")
			}
		})
	}
}

func TestLoad_DocumentFile(t *testing.T) {
	dir := t.TempDir()
	scenario := "name = \"sample\"\n[document]\nsample = true\n[[step]]\naction = \"tick\"\n"
	path := filepath.Join(dir, "s.toml")
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	r, err := Run(s)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Document == nil || len(r.Document.Nodes) < 2 {
		t.Errorf("sample document not loaded: %+v", r.Document)
	}

	missing := "[document]\nfile = \"nope.json\"\n"
	_ = os.WriteFile(path, []byte(missing), 0o644)
	s, _ = Load(path)
	if _, err := Run(s); err == nil {
		t.Error("Run() accepted a missing document file")
	}
}
