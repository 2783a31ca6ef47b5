package solver

import (
	"testing"

	"github.com/funvibe/typeclass/internal/store"
)

func TestRequiredConcrete(t *testing.T) {
	typeEquals := &store.Class{
		Name:   "TypeEquals",
		Params: []string{"a", "b"},
		FunDeps: []store.FunDep{
			{From: []int{0}, To: []int{1}},
			{From: []int{1}, To: []int{0}},
		},
	}
	collect := &store.Class{
		Name:   "Collect",
		Params: []string{"c", "e", "r"},
		FunDeps: []store.FunDep{
			{From: []int{0}, To: []int{1}},
			{From: []int{1}, To: []int{2}},
		},
	}

	tests := []struct {
		name  string
		class *store.Class
		known []int
		want  []int
	}{
		{
			name:  "left determines right",
			class: typeEquals,
			known: []int{0},
			want:  []int{0, 1},
		},
		{
			name:  "right determines left",
			class: typeEquals,
			known: []int{1},
			want:  []int{0, 1},
		},
		{
			name:  "nothing known determines nothing",
			class: typeEquals,
			known: nil,
			want:  nil,
		},
		{
			name:  "closure chains dependencies",
			class: collect,
			known: []int{0},
			want:  []int{0, 1, 2},
		},
		{
			name:  "middle determines tail only",
			class: collect,
			known: []int{1},
			want:  []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known := make(map[int]bool)
			for _, i := range tt.known {
				known[i] = true
			}
			got := RequiredConcrete(tt.class, known)
			if len(got) != len(tt.want) {
				t.Fatalf("closure = %v, want %v", got, tt.want)
			}
			for _, i := range tt.want {
				if !got[i] {
					t.Errorf("closure %v is missing index %d", got, i)
				}
			}
		})
	}
}
