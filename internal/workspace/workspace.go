// Package workspace models the editor surfaces a drag happens in: each
// workspace has a primary viewport onto the canvas and an outline panel
// viewport, and the workbench holds every open workspace.
package workspace

type Workspace struct {
	ID       string
	Viewport *Viewport
	Outline  *Viewport
}

type Workbench struct {
	workspaces []*Workspace
	current    *Workspace
}

func NewWorkbench() *Workbench {
	return &Workbench{}
}

// Add registers ws and makes it current.
func (w *Workbench) Add(ws *Workspace) {
	w.workspaces = append(w.workspaces, ws)
	w.current = ws
}

func (w *Workbench) Current() *Workspace {
	return w.current
}

func (w *Workbench) Find(id string) *Workspace {
	for _, ws := range w.workspaces {
		if ws.ID == id {
			return ws
		}
	}
	return nil
}

func (w *Workbench) EachWorkspace(fn func(*Workspace)) {
	for _, ws := range w.workspaces {
		fn(ws)
	}
}
