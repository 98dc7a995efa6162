package theory

import (
	"reflect"
	"sort"
	"testing"
)

func TestMode(t *testing.T) {
	major := Scale{Name: "Major", Intervals: []int{2, 2, 1, 2, 2, 2, 1}}

	cases := []struct {
		name string
		mode int
		want []int
	}{
		{"ionian", 0, []int{2, 2, 1, 2, 2, 2, 1}},
		{"dorian", 1, []int{2, 1, 2, 2, 2, 1, 2}},
		{"aeolian", 5, []int{2, 1, 2, 2, 1, 2, 2}},
		{"wraps forward", 7, []int{2, 2, 1, 2, 2, 2, 1}},
		{"wraps backward", -1, []int{1, 2, 2, 1, 2, 2, 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := major.Mode(c.mode)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Mode(%d) = %v, want %v", c.mode, got, c.want)
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	cases := []struct {
		name      string
		intervals []int
		want      []int
	}{
		{"major", []int{2, 2, 1, 2, 2, 2, 1}, []int{0, 2, 4, 5, 7, 9, 11}},
		{"minor pentatonic", []int{3, 2, 2, 3, 2}, []int{0, 3, 5, 7, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Offsets(c.intervals)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Offsets(%v) = %v, want %v", c.intervals, got, c.want)
			}
		})
	}
}

func TestBuiltinScalesSumToOctave(t *testing.T) {
	for _, s := range builtinScales {
		sum := 0
		for _, iv := range s.Intervals {
			sum += iv
		}
		if sum != 12 {
			t.Errorf("%s: intervals %v sum to %d, want 12", s.Name, s.Intervals, sum)
		}
	}
}

func TestRepository(t *testing.T) {
	r := NewRepository()

	t.Run("known scale", func(t *testing.T) {
		got, ok := r.GetScale("Major", 5)
		if !ok {
			t.Fatal("GetScale(Major, 5) not found")
		}
		want := []int{2, 1, 2, 2, 1, 2, 2}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("GetScale(Major, 5) = %v, want %v", got, want)
		}
	})

	t.Run("unknown scale", func(t *testing.T) {
		if _, ok := r.GetScale("Nonexistent", 0); ok {
			t.Error("GetScale(Nonexistent) reported ok")
		}
	})

	t.Run("names sorted", func(t *testing.T) {
		names := r.GetNames()
		if len(names) != len(builtinScales) {
			t.Fatalf("got %d names, want %d", len(names), len(builtinScales))
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("names not sorted: %v", names)
		}
	})

	t.Run("add replaces", func(t *testing.T) {
		r.Add(Scale{Name: "Major", Intervals: []int{12}})
		got, _ := r.GetScale("Major", 0)
		if !reflect.DeepEqual(got, []int{12}) {
			t.Errorf("after Add, GetScale(Major, 0) = %v, want [12]", got)
		}
	})
}
