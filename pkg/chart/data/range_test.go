package data

import (
	"testing"

	"github.com/matzehuels/stackbar/pkg/chart/group"
)

func TestRangeCombine(t *testing.T) {
	got := Range{Lower: -1, Upper: 2}.Combine(Range{Lower: 0, Upper: 5})
	if want := (Range{Lower: -1, Upper: 5}); got != want {
		t.Errorf("Combine() = %v, want %v", got, want)
	}
	if got.Length() != 6 {
		t.Errorf("Length() = %v, want 6", got.Length())
	}
	if !got.Contains(0) || got.Contains(6) {
		t.Error("Contains() gave wrong answer")
	}
}

func TestFindStackedRangeBoundsAbsent(t *testing.T) {
	if _, ok := FindStackedRangeBounds(nil, group.New()); ok {
		t.Error("nil dataset should have no range")
	}
	if _, ok := FindStackedRangeBounds(NewTable(), group.New()); ok {
		t.Error("empty dataset should have no range")
	}

	tbl := NewTable()
	tbl.AddRow("S1")
	tbl.AddColumn("C1")
	if _, ok := FindStackedRangeBounds(tbl, group.New()); ok {
		t.Error("dataset without values should have no range")
	}
}

func TestFindStackedRangeBounds(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Table, *group.Map)
		want  Range
	}{
		{
			name: "single group mixed signs",
			build: func() (*Table, *group.Map) {
				tbl := NewTable()
				tbl.SetValue(3, "row0", "col0")
				tbl.SetValue(-2, "row1", "col0")
				m := group.NewWithDefault("A")
				m.Set("row0", "A")
				m.Set("row1", "A")
				return tbl, m
			},
			want: Range{Lower: -2, Upper: 3},
		},
		{
			name: "groups stack separately",
			build: func() (*Table, *group.Map) {
				tbl := NewTable()
				tbl.SetValue(4, "s0", "c0")
				tbl.SetValue(5, "s1", "c0")
				tbl.SetValue(6, "s2", "c0")
				m := group.NewWithDefault("A")
				m.Set("s0", "A")
				m.Set("s1", "A")
				m.Set("s2", "B")
				return tbl, m
			},
			want: Range{Lower: 0, Upper: 9},
		},
		{
			name: "maximum taken across categories",
			build: func() (*Table, *group.Map) {
				tbl := NewTable()
				tbl.SetValue(1, "s0", "c0")
				tbl.SetValue(1, "s1", "c0")
				tbl.SetValue(-7, "s0", "c1")
				tbl.SetValue(10, "s1", "c1")
				return tbl, group.New()
			},
			want: Range{Lower: -7, Upper: 10},
		},
		{
			name: "all positive still includes zero",
			build: func() (*Table, *group.Map) {
				tbl := NewTable()
				tbl.SetValue(2, "s0", "c0")
				tbl.SetValue(3, "s1", "c0")
				return tbl, group.New()
			},
			want: Range{Lower: 0, Upper: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, m := tt.build()
			got, ok := FindStackedRangeBounds(tbl, m)
			if !ok {
				t.Fatal("FindStackedRangeBounds() reported no range")
			}
			if got != tt.want {
				t.Errorf("FindStackedRangeBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}
