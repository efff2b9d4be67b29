package dat

import (
	"testing"
)

func TestContiguousStorageMatchesDefault(t *testing.T) {
	conf := rateConfig(2, 1, 1000, 3)
	data := []byte("1,0,1.0,2.0,1\n2,1000,1.5,2.5,0\n3,2000,1.75,3.0,1\n")

	def, err := Decode(data, conf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	arena, err := Decode(data, conf, WithContiguousStorage())
	if err != nil {
		t.Fatalf("Decode(WithContiguousStorage) error = %v", err)
	}

	for i := range def.Time {
		if def.Time[i] != arena.Time[i] {
			t.Errorf("Time[%d] = %v, want %v", i, arena.Time[i], def.Time[i])
		}
	}
	for ch := range def.Analog {
		for i := range def.Analog[ch] {
			if def.Analog[ch][i] != arena.Analog[ch][i] {
				t.Errorf("Analog[%d][%d] = %v, want %v", ch, i, arena.Analog[ch][i], def.Analog[ch][i])
			}
		}
	}
	for ch := range def.Status {
		for i := range def.Status[ch] {
			if def.Status[ch][i] != arena.Status[ch][i] {
				t.Errorf("Status[%d][%d] = %v, want %v", ch, i, arena.Status[ch][i], def.Status[ch][i])
			}
		}
	}
}

func TestArenaAllocatorCarving(t *testing.T) {
	a := newArena(5, 3)

	f1 := a.floats(2)
	f2 := a.floats(3)
	if len(f1) != 2 || len(f2) != 3 {
		t.Fatalf("floats lengths = %d, %d, want 2, 3", len(f1), len(f2))
	}
	f1[1] = 42
	if f2[0] == 42 {
		t.Error("blocks alias each other")
	}

	i1 := a.ints(3)
	if len(i1) != 3 {
		t.Fatalf("ints length = %d, want 3", len(i1))
	}
}

func TestSampleSetSamples(t *testing.T) {
	conf := rateConfig(1, 1, 1000, 4)
	s := newSampleSet(conf, conf.TotalSamples(), false)
	if s.Samples() != 4 {
		t.Errorf("Samples() = %d, want 4", s.Samples())
	}
	if len(s.Analog) != 1 || len(s.Status) != 1 {
		t.Errorf("channel slices = %d analog, %d status, want 1 and 1", len(s.Analog), len(s.Status))
	}
	if len(s.Analog[0]) != 4 || len(s.Status[0]) != 4 {
		t.Errorf("series lengths = %d, %d, want 4, 4", len(s.Analog[0]), len(s.Status[0]))
	}
}

func TestStatusMissingConstant(t *testing.T) {
	if StatusMissing != -1 {
		t.Errorf("StatusMissing = %d, want -1", StatusMissing)
	}
}
