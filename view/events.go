package view

// SelectNode marks the node starting at pos as node-selected. Node views
// implementing NodeSelector draw the selection themselves; other nodes get
// the "selected" class. Any previous node selection is cleared first.
func (v *View) SelectNode(pos int) error {
	if v.destroyed {
		return ErrDestroyed
	}
	vn := v.nodeStartingAt(pos)
	if vn == nil {
		return ErrNoNode
	}
	if v.selected == vn {
		return nil
	}
	v.DeselectNode()

	vn.selected = true
	v.selected = vn
	if vn.drawsSelection() {
		vn.custom.selectNode()
	} else {
		addClass(vn.nodeDom, selectedClass)
	}
	return nil
}

// DeselectNode clears the node selection, if any.
func (v *View) DeselectNode() {
	vn := v.selected
	if vn == nil {
		return
	}
	v.selected = nil
	vn.selected = false
	switch {
	case vn.drawsSelection():
		if vn.custom.deselectNode != nil {
			vn.custom.deselectNode()
		}
	default:
		removeClass(vn.nodeDom, selectedClass)
	}
}

// SelectedPos returns the position of the node-selected node.
func (v *View) SelectedPos() (int, bool) {
	if v.selected == nil {
		return 0, false
	}
	return v.selected.pos(), true
}

// StopEvent reports whether a node view containing the event target wants
// to handle the event itself, in which case the host should not.
func (v *View) StopEvent(ev Event) bool {
	for vn := v.owner(ev.Target); vn != nil; vn = vn.parent {
		if vn.custom != nil && vn.custom.stopEvent != nil && vn.custom.stopEvent(ev) {
			return true
		}
	}
	return false
}

// IgnoreMutation reports whether the host should ignore a change it observed
// in the visual tree. Node views decide for their own elements; without a
// decision, changes inside nodes whose content the engine does not render are
// ignored, except selection changes.
func (v *View) IgnoreMutation(m MutationRecord) bool {
	vn := v.owner(m.Target)
	if vn == nil {
		return false
	}
	if vn.custom != nil && vn.custom.ignoreMutation != nil {
		return vn.custom.ignoreMutation(m)
	}
	switch vn.kind {
	case kindText:
		return false
	case kindWidget:
		return m.Type != "selection"
	default:
		return vn.contentDom == nil && m.Type != "selection"
	}
}
