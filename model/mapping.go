package model

// MapResult is the outcome of mapping one position through an edit.
type MapResult struct {
	Pos int
	// Deleted reports that the content on the assoc side of the position was
	// removed by the edit.
	Deleted bool
}

// Mappable maps document positions from one version to a later one.
type Mappable interface {
	Map(pos, assoc int) int
	MapResult(pos, assoc int) MapResult
}

// StepMap records the replaced ranges of a single edit as
// (start, oldSize, newSize) triples in ascending start order.
type StepMap struct {
	ranges []int
}

// NewStepMap builds a map for one replacement of oldSize positions at start
// by newSize positions.
func NewStepMap(start, oldSize, newSize int) StepMap {
	if oldSize == 0 && newSize == 0 {
		return StepMap{}
	}
	return StepMap{ranges: []int{start, oldSize, newSize}}
}

// Empty reports whether the map leaves every position unchanged.
func (m StepMap) Empty() bool { return len(m.ranges) == 0 }

func (m StepMap) Map(pos, assoc int) int { return m.MapResult(pos, assoc).Pos }

// MapResult maps pos. A position exactly at an insertion point stays before
// the inserted content when assoc < 0 and moves after it otherwise.
func (m StepMap) MapResult(pos, assoc int) MapResult {
	diff := 0
	for i := 0; i < len(m.ranges); i += 3 {
		start := m.ranges[i]
		oldSize := m.ranges[i+1]
		newSize := m.ranges[i+2]
		end := start + oldSize
		if pos < start {
			break
		}
		if pos <= end {
			side := newSize
			if assoc < 0 {
				side = 0
			}
			deleted := false
			if oldSize > 0 {
				switch {
				case pos > start && pos < end:
					deleted = true
				case pos == start && assoc >= 0:
					deleted = true
				case pos == end && assoc < 0:
					deleted = true
				}
			}
			if deleted {
				// Positions inside a replaced range collapse to its edge.
				if assoc < 0 {
					side = 0
				} else {
					side = newSize
				}
			}
			return MapResult{Pos: start + diff + side, Deleted: deleted}
		}
		diff += newSize - oldSize
	}
	return MapResult{Pos: pos + diff}
}

// Mapping composes the step maps of a sequence of edits.
type Mapping struct {
	maps []StepMap
}

// AppendMap adds the map of the next edit.
func (m *Mapping) AppendMap(sm StepMap) {
	m.maps = append(m.maps, sm)
}

// Maps returns the step maps in application order.
func (m *Mapping) Maps() []StepMap { return append([]StepMap(nil), m.maps...) }

func (m *Mapping) Map(pos, assoc int) int { return m.MapResult(pos, assoc).Pos }

// MapResult maps pos through every step. Deleted is set when any step
// deleted the content on the assoc side.
func (m *Mapping) MapResult(pos, assoc int) MapResult {
	deleted := false
	for _, sm := range m.maps {
		r := sm.MapResult(pos, assoc)
		pos = r.Pos
		if r.Deleted {
			deleted = true
		}
	}
	return MapResult{Pos: pos, Deleted: deleted}
}
