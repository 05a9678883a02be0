// Package overlay translates pointer gestures in screen space into
// review store mutations, applying the active zoom transform.
//
// All region geometry is stored in document-native coordinates. Incoming
// pointer coordinates are divided by the zoom factor before hit-testing
// or writing back, and document coordinates are multiplied by the zoom
// factor for rendering. That separation keeps persisted geometry stable
// across zoom changes.
package overlay

import (
	"github.com/google/uuid"

	"pii-redaction-be/pkg/geometry"
	"pii-redaction-be/pkg/review"
)

// Tool is the active, mutually exclusive interaction mode.
type Tool int

const (
	// ToolSelect selects an entity region; clicking the already-selected
	// entity toggles its approval.
	ToolSelect Tool = iota
	// ToolRedact places a fixed-size custom region centered on the click.
	ToolRedact
	// ToolMove drags an entity region; the drop position is clamped to
	// the page bounds.
	ToolMove
	// ToolErase deletes the topmost custom region under the click.
	ToolErase
)

const (
	// DefaultRegionWidth/Height size the region placed by the redact tool,
	// in document units.
	DefaultRegionWidth  = 120.0
	DefaultRegionHeight = 40.0

	// MinRegionSize is the resize floor preventing degenerate zero-area
	// regions, in document units.
	MinRegionSize = 20.0
)

// Region is a hit-testable rectangle on the current page. EntityID is nil
// for custom redactions.
type Region struct {
	EntityID *uuid.UUID
	CustomID *uuid.UUID
	Bounds   geometry.Rect
}

// Controller maps pointer input onto one document's review store.
type Controller struct {
	store      *review.Store
	pageWidth  float64
	pageHeight float64
	tool       Tool

	drag   *dragState
	resize *resizeState
}

type dragState struct {
	entityID uuid.UUID
	// grab offset between the pointer and the region origin, document units
	dx, dy float64
	bounds geometry.Rect
}

type resizeState struct {
	entityID uuid.UUID
	// anchor pointer position, document units
	x, y   float64
	bounds geometry.Rect
}

// NewController wires a controller to a store and the page's document-unit
// dimensions.
func NewController(store *review.Store, pageWidth, pageHeight float64) *Controller {
	return &Controller{
		store:      store,
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		tool:       ToolSelect,
	}
}

// SetTool switches the interaction mode and cancels any gesture in flight.
func (c *Controller) SetTool(t Tool) {
	c.tool = t
	c.drag = nil
	c.resize = nil
}

// Tool returns the active interaction mode.
func (c *Controller) Tool() Tool {
	return c.tool
}

// toDoc converts a screen-space pointer position into document space.
func (c *Controller) toDoc(x, y float64) (float64, float64) {
	z := c.store.Zoom()
	return x / z, y / z
}

// RenderRegions returns the current page's regions scaled to screen space,
// in z-order (bottom first).
func (c *Controller) RenderRegions() []Region {
	z := c.store.Zoom()
	regions := c.pageRegions()
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		r.Bounds = r.Bounds.Scale(z)
		out = append(out, r)
	}
	return out
}

// pageRegions collects hit-testable regions for the current page in
// z-order: entity overlays first (load order), then custom regions in
// insertion order. Later entries render on top.
func (c *Controller) pageRegions() []Region {
	page := c.store.Page()
	out := make([]Region, 0)

	for _, e := range c.store.Entities() {
		if e.Page != page {
			continue
		}
		bounds, ok := c.store.EffectiveBounds(e.ID)
		if !ok {
			// Unresolved entities have no overlay to interact with.
			continue
		}
		id := e.ID
		out = append(out, Region{EntityID: &id, Bounds: bounds})
	}
	for _, r := range c.store.CustomRedactions() {
		if r.Page != page {
			continue
		}
		id := r.ID
		out = append(out, Region{CustomID: &id, Bounds: r.Bounds})
	}
	return out
}

// hitTest returns the topmost region containing the document-space point.
// Tie-break: the last region in z-order wins, for select and erase alike.
func (c *Controller) hitTest(x, y float64) (Region, bool) {
	regions := c.pageRegions()
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Bounds.ContainsPoint(x, y) {
			return regions[i], true
		}
	}
	return Region{}, false
}

// Click handles a single pointer press for the click-driven tools.
// Returns true when the click mutated or selected something.
func (c *Controller) Click(screenX, screenY float64) (bool, error) {
	x, y := c.toDoc(screenX, screenY)

	switch c.tool {
	case ToolSelect:
		return c.clickSelect(x, y)
	case ToolRedact:
		return c.clickRedact(x, y)
	case ToolErase:
		return c.clickErase(x, y)
	default:
		return false, nil
	}
}

// clickSelect selects the entity under the point; clicking the entity
// that is already selected toggles approve/reject.
func (c *Controller) clickSelect(x, y float64) (bool, error) {
	region, ok := c.hitTest(x, y)
	if !ok || region.EntityID == nil {
		c.store.Select(nil)
		return false, nil
	}

	id := *region.EntityID
	if sel := c.store.Selected(); sel != nil && *sel == id {
		status, err := c.store.Status(id)
		if err != nil {
			return false, err
		}
		if status == review.StatusApproved {
			return true, c.store.Reject(id)
		}
		return true, c.store.Approve(id)
	}

	c.store.Select(&id)
	return true, nil
}

// clickRedact places a default-size custom region centered on the click,
// clamped inside the page. Custom regions apply automatically, which is
// what "immediately approved" means for user-drawn redactions.
func (c *Controller) clickRedact(x, y float64) (bool, error) {
	bounds := geometry.Rect{
		X:      x - DefaultRegionWidth/2,
		Y:      y - DefaultRegionHeight/2,
		Width:  DefaultRegionWidth,
		Height: DefaultRegionHeight,
	}.ClampTo(c.pageWidth, c.pageHeight)

	_, err := c.store.AddCustom(c.store.Page(), bounds, "")
	if err != nil {
		return false, err
	}
	return true, nil
}

// clickErase deletes the topmost custom region under the point. Entity
// overlays are never deleted, only rejected.
func (c *Controller) clickErase(x, y float64) (bool, error) {
	regions := c.pageRegions()
	for i := len(regions) - 1; i >= 0; i-- {
		r := regions[i]
		if r.CustomID != nil && r.Bounds.ContainsPoint(x, y) {
			return c.store.RemoveCustom(*r.CustomID), nil
		}
	}
	return false, nil
}

// DragStart begins a move gesture on the entity region under the pointer.
func (c *Controller) DragStart(screenX, screenY float64) bool {
	if c.tool != ToolMove {
		return false
	}
	x, y := c.toDoc(screenX, screenY)
	region, ok := c.hitTest(x, y)
	if !ok || region.EntityID == nil {
		return false
	}
	c.drag = &dragState{
		entityID: *region.EntityID,
		dx:       x - region.Bounds.X,
		dy:       y - region.Bounds.Y,
		bounds:   region.Bounds,
	}
	return true
}

// DragMove updates the in-flight drag preview. Nothing is written to the
// store until DragEnd.
func (c *Controller) DragMove(screenX, screenY float64) (geometry.Rect, bool) {
	if c.drag == nil {
		return geometry.Rect{}, false
	}
	x, y := c.toDoc(screenX, screenY)
	preview := c.drag.bounds
	preview.X = x - c.drag.dx
	preview.Y = y - c.drag.dy
	return preview, true
}

// DragEnd commits the move as an entity modification, with the final
// position clamped so the region stays fully inside the page.
func (c *Controller) DragEnd(screenX, screenY float64) error {
	if c.drag == nil {
		return nil
	}
	drag := c.drag
	c.drag = nil

	x, y := c.toDoc(screenX, screenY)
	moved := drag.bounds
	moved.X = x - drag.dx
	moved.Y = y - drag.dy
	moved = moved.ClampTo(c.pageWidth, c.pageHeight)

	return c.store.Modify(drag.entityID, review.Modification{
		Kind:   review.ModMove,
		Bounds: &moved,
	})
}

// ResizeStart begins a resize-handle gesture on the entity region under
// the pointer.
func (c *Controller) ResizeStart(screenX, screenY float64) bool {
	x, y := c.toDoc(screenX, screenY)
	region, ok := c.hitTest(x, y)
	if !ok || region.EntityID == nil {
		return false
	}
	c.resize = &resizeState{
		entityID: *region.EntityID,
		x:        x,
		y:        y,
		bounds:   region.Bounds,
	}
	return true
}

// ResizeMove previews the new dimensions from the pointer delta.
func (c *Controller) ResizeMove(screenX, screenY float64) (geometry.Rect, bool) {
	if c.resize == nil {
		return geometry.Rect{}, false
	}
	return c.resizedBounds(screenX, screenY), true
}

// ResizeEnd commits the resize as an entity modification.
func (c *Controller) ResizeEnd(screenX, screenY float64) error {
	if c.resize == nil {
		return nil
	}
	bounds := c.resizedBounds(screenX, screenY)
	id := c.resize.entityID
	c.resize = nil

	return c.store.Modify(id, review.Modification{
		Kind:   review.ModResize,
		Bounds: &bounds,
	})
}

// resizedBounds applies the pointer delta to width/height, clamped to the
// minimum region size.
func (c *Controller) resizedBounds(screenX, screenY float64) geometry.Rect {
	x, y := c.toDoc(screenX, screenY)
	out := c.resize.bounds
	out.Width += x - c.resize.x
	out.Height += y - c.resize.y
	return out.ClampMinSize(MinRegionSize)
}
