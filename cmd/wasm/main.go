//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/inamate/snapkit/internal/designer"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/typeid"
)

var d *designer.Designer

func main() {
	d = designer.New(designer.Options{WorkspaceID: typeid.NewWorkspaceID()})

	snapkit := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	snapkit.Set("loadDocument", js.FuncOf(loadDocument))
	snapkit.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	snapkit.Set("setViewport", js.FuncOf(setViewport))
	snapkit.Set("setOutline", js.FuncOf(setOutline))
	snapkit.Set("dragStart", js.FuncOf(dragStart))
	snapkit.Set("dragMove", js.FuncOf(dragMove))
	snapkit.Set("dragStop", js.FuncOf(dragStop))
	snapkit.Set("addGuide", js.FuncOf(addGuide))
	snapkit.Set("removeGuide", js.FuncOf(removeGuide))
	snapkit.Set("tick", js.FuncOf(tick))
	snapkit.Set("onChange", js.FuncOf(onChange))

	// --- Queries (frontend ← backend) ---
	snapkit.Set("getState", js.FuncOf(getState))
	snapkit.Set("hitTest", js.FuncOf(hitTest))
	snapkit.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	snapkit.Set("getDocument", js.FuncOf(getDocument))
	snapkit.Set("isDragging", js.FuncOf(isDragging))

	js.Global().Set("snapkit", snapkit)
	js.Global().Set("snapkitWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func stringArray(v js.Value) []string {
	if v.Type() != js.TypeObject {
		return nil
	}
	ids := make([]string, v.Length())
	for i := range ids {
		ids[i] = v.Index(i).String()
	}
	return ids
}

func rectArg(args []js.Value, i int) geometry.Rect {
	return geometry.Rect{X: args[i].Float(), Y: args[i+1].Float(), Width: args[i+2].Float(), Height: args[i+3].Float()}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing document JSON")
	}
	if err := d.LoadDocument(args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	docID := typeid.NewDocumentID()
	if len(args) > 0 && args[0].Type() == js.TypeString {
		docID = args[0].String()
	}
	d.LoadSampleDocument(docID)
	return ok()
}

// setViewport(x, y, width, height, scrollX, scrollY)
func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return fail("setViewport needs x, y, width, height, scrollX, scrollY")
	}
	d.SetViewport(rectArg(args, 0), geometry.Point{X: args[4].Float(), Y: args[5].Float()})
	return ok()
}

// setOutline(x, y, width, height, contentWidth, contentHeight)
func setOutline(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return fail("setOutline needs x, y, width, height, contentWidth, contentHeight")
	}
	d.SetOutline(rectArg(args, 0), geometry.Size{Width: args[4].Float(), Height: args[5].Float()})
	return ok()
}

// dragStart(type, direction, nodeIds, x, y)
func dragStart(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return fail("dragStart needs type, direction, nodeIds, x, y")
	}
	client := geometry.Point{X: args[3].Float(), Y: args[4].Float()}
	ids := stringArray(args[2])
	if len(ids) == 0 {
		if hit := d.HitTest(client); hit != "" {
			ids = []string{hit}
		}
	}
	if err := d.DragStart(args[0].String(), args[1].String(), ids, client); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func dragMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	d.DragMove(geometry.Point{X: args[0].Float(), Y: args[1].Float()})
	return nil
}

func dragStop(this js.Value, args []js.Value) interface{} {
	d.DragStop()
	return nil
}

// addGuide(json) takes {id?, start, end} and returns the guide id.
func addGuide(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing guide JSON")
	}
	var g designer.Guide
	if err := json.Unmarshal([]byte(args[0].String()), &g); err != nil {
		return fail("invalid guide JSON")
	}
	if g.ID == "" {
		g.ID = typeid.NewGuideID()
	}
	if !d.AddGuide(g) {
		return fail("invalid guide")
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": g.ID})
}

func removeGuide(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(d.RemoveGuide(args[0].String()))
}

// tick is called from requestAnimationFrame.
func tick(this js.Value, args []js.Value) interface{} {
	d.Tick(time.Now())
	return nil
}

func onChange(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return nil
	}
	cb := args[0]
	d.OnChange(func() { cb.Invoke() })
	return nil
}

// --- Query Handlers ---

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(d.StateJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(d.HitTest(geometry.Point{X: args[0].Float(), Y: args[1].Float()}))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("null")
	}
	data, err := json.Marshal(d.SelectionBounds(stringArray(args[0])))
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(d.DocumentJSON())
}

func isDragging(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(d.Dragging())
}
