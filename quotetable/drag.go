package quotetable

// DragPhase is the state of a row drag gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
)

// DragState is the drag state machine of one table: idle, or dragging a row.
type DragState struct {
	Phase DragPhase
	RowID string
}

func (d *DragState) start(rowID string) {
	d.Phase = DragDragging
	d.RowID = rowID
}

func (d *DragState) reset() {
	d.Phase = DragIdle
	d.RowID = ""
}

// DropPosition says on which side of the hovered row a drop lands.
type DropPosition string

const (
	DropBefore DropPosition = "before"
	DropAfter  DropPosition = "after"
)

// dropPosition splits a row at its vertical midpoint.
func dropPosition(offsetY, height float64) DropPosition {
	if offsetY < height/2 {
		return DropBefore
	}
	return DropAfter
}

const indicatorStyle = "position: absolute; height: 3px; width: 100%; left: 0; z-index: 1000;"

func indicatorHTML(pos DropPosition, color string) string {
	edge := "bottom: 0;"
	if pos == DropBefore {
		edge = "top: 0;"
	}
	return `<div class="drop-indicator" data-position="` + string(pos) + `" style="` +
		indicatorStyle + " " + edge + " background-color: " + color + `;"></div>`
}
