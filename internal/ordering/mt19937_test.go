package ordering

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Reference values come from CPython's random.Random(seed).

func TestMT19937_Uint32MatchesCPython(t *testing.T) {
	tests := []struct {
		seed int64
		want []uint32
	}{
		{0, []uint32{3626764237, 1654615998, 3255389356}},
		{195, []uint32{2557733475, 1699418194, 180999263}},
		{294, []uint32{756204784, 143880876, 2080286996}},
		{52497, []uint32{1257856304, 625187443, 1713899439}},
		{1<<40 + 5, []uint32{2166296868, 2220160828, 1153647273}},
		{-195, []uint32{2557733475, 1699418194, 180999263}},
	}
	for _, tt := range tests {
		m := NewMT19937(tt.seed)
		got := make([]uint32, len(tt.want))
		for i := range got {
			got[i] = m.Uint32()
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("seed %d: Uint32 mismatch (-want +got):\n%s", tt.seed, diff)
		}
	}
}

func TestMT19937_IntnMatchesCPython(t *testing.T) {
	m := NewMT19937(195)
	want := []int{9, 6, 0, 3, 3, 6, 1, 4}
	got := make([]int, len(want))
	for i := range got {
		got[i] = m.Intn(10)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Intn(10) mismatch (-want +got):\n%s", diff)
	}
}

func TestMT19937_ShuffleMatchesCPython(t *testing.T) {
	tests := []struct {
		seed int64
		want []int
	}{
		{195, []int{5, 10, 4, 1, 2, 11, 7, 8, 3, 0, 6, 9}},
		{294, []int{10, 11, 9, 6, 4, 5, 8, 1, 3, 7, 0, 2}},
	}
	for _, tt := range tests {
		got := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
		NewMT19937(tt.seed).Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("seed %d: shuffle mismatch (-want +got):\n%s", tt.seed, diff)
		}
	}
}

func TestMT19937_ShuffleShortConsumesNothing(t *testing.T) {
	a := NewMT19937(195)
	a.Shuffle(0, func(i, j int) { t.Fatal("swap called for empty input") })
	a.Shuffle(1, func(i, j int) { t.Fatal("swap called for single element") })

	b := NewMT19937(195)
	if a.Uint32() != b.Uint32() {
		t.Error("shuffling fewer than two elements advanced the generator")
	}
}

func TestMT19937_Intn_Range(t *testing.T) {
	m := NewMT19937(7)
	for n := 1; n < 50; n++ {
		for range 20 {
			if v := m.Intn(n); v < 0 || v >= n {
				t.Fatalf("Intn(%d) = %d", n, v)
			}
		}
	}
}

func TestMT19937_Bits(t *testing.T) {
	a, b := NewMT19937(195), NewMT19937(195)
	lo, hi := uint64(b.Uint32()), uint64(b.Uint32())
	if got, want := a.Bits(64), lo|hi<<32; got != want {
		t.Errorf("Bits(64) = %d, want %d", got, want)
	}
	if got, want := NewMT19937(195).Bits(4), uint64(2557733475>>28); got != want {
		t.Errorf("Bits(4) = %d, want %d", got, want)
	}
}
