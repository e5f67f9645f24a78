// Package replay runs scripted drag sessions against a designer without a
// browser. Scenarios are TOML files.
package replay

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Scenario struct {
	Name     string    `toml:"name"`
	Document Document  `toml:"document"`
	Viewport *Viewport `toml:"viewport"`
	Guides   []Guide   `toml:"guide"`
	Steps    []Step    `toml:"step"`

	// dir resolves Document.File.
	dir string
}

// Document is either the sample page, a JSON file, or a flat list of nodes
// under a root of the given size.
type Document struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Sample bool    `toml:"sample"`
	File   string  `toml:"file"`
	Nodes  []Node  `toml:"node"`
}

type Node struct {
	ID   string    `toml:"id"`
	Rect []float64 `toml:"rect"`
}

type Viewport struct {
	Rect   []float64 `toml:"rect"`
	Scroll []float64 `toml:"scroll"`
}

type Guide struct {
	ID    string    `toml:"id"`
	Start []float64 `toml:"start"`
	End   []float64 `toml:"end"`
}

const (
	ActionStart       = "start"
	ActionMove        = "move"
	ActionStop        = "stop"
	ActionTick        = "tick"
	ActionGuideAdd    = "guide.add"
	ActionGuideRemove = "guide.remove"
)

type Step struct {
	Action    string    `toml:"action"`
	Type      string    `toml:"type"`
	Direction string    `toml:"direction"`
	Nodes     []string  `toml:"nodes"`
	At        []float64 `toml:"at"`
	Frames    int       `toml:"frames"`
	Guide     *Guide    `toml:"guide"`
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

func (s *Scenario) validate() error {
	for _, n := range s.Document.Nodes {
		if n.ID == "" || len(n.Rect) != 4 {
			return fmt.Errorf("node %q: want an id and rect = [x, y, width, height]", n.ID)
		}
	}
	if s.Viewport != nil && (len(s.Viewport.Rect) != 4 || (s.Viewport.Scroll != nil && len(s.Viewport.Scroll) != 2)) {
		return fmt.Errorf("viewport: want rect = [x, y, width, height] and scroll = [x, y]")
	}
	for _, g := range s.Guides {
		if err := g.validate(); err != nil {
			return err
		}
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionStart, ActionMove:
			if len(st.At) != 2 {
				return fmt.Errorf("step %d (%s): want at = [x, y]", i+1, st.Action)
			}
		case ActionGuideAdd:
			if st.Guide == nil {
				return fmt.Errorf("step %d: guide.add needs a guide table", i+1)
			}
			if err := st.Guide.validate(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case ActionGuideRemove:
			if st.Guide == nil || st.Guide.ID == "" {
				return fmt.Errorf("step %d: guide.remove needs guide.id", i+1)
			}
		case ActionStop, ActionTick:
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
	}
	return nil
}

func (g *Guide) validate() error {
	if len(g.Start) != 2 || len(g.End) != 2 {
		return fmt.Errorf("guide %q: want start = [x, y] and end = [x, y]", g.ID)
	}
	return nil
}
