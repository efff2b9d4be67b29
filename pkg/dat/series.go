package dat

import "github.com/gridtrace/comtrade/pkg/cfg"

// StatusMissing marks a missing status sample in hand-built sets.
// Decoders never produce it: the standard defines no missing-value
// sentinel for status channels, and blank text fields decode as zero.
const StatusMissing int32 = -1

// SampleSet holds decoded sample series, one slice per channel.
// Time is in seconds relative to the record start. Missing analog
// samples are NaN. Sets are not modified after decoding.
type SampleSet struct {
	Time   []float64
	Analog [][]float64
	Status [][]int32
}

// Samples returns the per-channel sample count.
func (s *SampleSet) Samples() int {
	return len(s.Time)
}

// allocator controls how channel series are laid out in memory.
type allocator interface {
	floats(n int) []float64
	ints(n int) []int32
}

// heapAllocator gives every series its own allocation.
type heapAllocator struct{}

func (heapAllocator) floats(n int) []float64 { return make([]float64, n) }
func (heapAllocator) ints(n int) []int32     { return make([]int32, n) }

// arenaAllocator carves series out of two preallocated blocks sized at
// construction, so a whole record lives in two contiguous allocations.
type arenaAllocator struct {
	f []float64
	i []int32
}

func newArena(floats, ints int) *arenaAllocator {
	return &arenaAllocator{f: make([]float64, floats), i: make([]int32, ints)}
}

func (a *arenaAllocator) floats(n int) []float64 {
	block := a.f[:n:n]
	a.f = a.f[n:]
	return block
}

func (a *arenaAllocator) ints(n int) []int32 {
	block := a.i[:n:n]
	a.i = a.i[n:]
	return block
}

// newSampleSet preallocates series for every declared channel.
func newSampleSet(conf *cfg.Config, samples int, contiguous bool) *SampleSet {
	na, nd := conf.AnalogCount(), conf.StatusCount()
	var alloc allocator = heapAllocator{}
	if contiguous {
		alloc = newArena((1+na)*samples, nd*samples)
	}
	s := &SampleSet{
		Time:   alloc.floats(samples),
		Analog: make([][]float64, na),
		Status: make([][]int32, nd),
	}
	for i := range s.Analog {
		s.Analog[i] = alloc.floats(samples)
	}
	for i := range s.Status {
		s.Status[i] = alloc.ints(samples)
	}
	return s
}
