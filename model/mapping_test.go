package model

import "testing"

func TestStepMap_Insertion(t *testing.T) {
	m := NewStepMap(1, 0, 1)

	cases := []struct {
		pos, assoc int
		want       MapResult
	}{
		{pos: 0, assoc: 1, want: MapResult{Pos: 0}},
		{pos: 1, assoc: -1, want: MapResult{Pos: 1}},
		{pos: 1, assoc: 1, want: MapResult{Pos: 2}},
		{pos: 4, assoc: 1, want: MapResult{Pos: 5}},
	}
	for _, tc := range cases {
		if got := m.MapResult(tc.pos, tc.assoc); got != tc.want {
			t.Fatalf("MapResult(%d,%d): got %+v, want %+v", tc.pos, tc.assoc, got, tc.want)
		}
	}
}

func TestStepMap_Deletion(t *testing.T) {
	m := NewStepMap(3, 2, 0)

	cases := []struct {
		pos, assoc int
		want       MapResult
	}{
		{pos: 3, assoc: -1, want: MapResult{Pos: 3}},
		{pos: 3, assoc: 1, want: MapResult{Pos: 3, Deleted: true}},
		{pos: 4, assoc: 1, want: MapResult{Pos: 3, Deleted: true}},
		{pos: 5, assoc: -1, want: MapResult{Pos: 3, Deleted: true}},
		{pos: 5, assoc: 1, want: MapResult{Pos: 3}},
		{pos: 6, assoc: 1, want: MapResult{Pos: 4}},
	}
	for _, tc := range cases {
		if got := m.MapResult(tc.pos, tc.assoc); got != tc.want {
			t.Fatalf("MapResult(%d,%d): got %+v, want %+v", tc.pos, tc.assoc, got, tc.want)
		}
	}
}

func TestMapping_Composes(t *testing.T) {
	var m Mapping
	m.AppendMap(NewStepMap(1, 0, 2))
	m.AppendMap(NewStepMap(0, 1, 0))

	if got := m.Map(5, 1); got != 6 {
		t.Fatalf("Map(5): got %d, want 6", got)
	}
	if r := m.MapResult(0, 1); !r.Deleted || r.Pos != 0 {
		t.Fatalf("MapResult(0): got %+v, want deleted at 0", r)
	}
}
