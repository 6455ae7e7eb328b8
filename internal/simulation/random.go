package simulation

import "math/rand/v2"

// Streams hands the engine the random source used for one trajectory of
// one run. Run counts Simulate calls on the same engine, starting at 0.
type Streams interface {
	Stream(run, trajectory int) rand.Source
}

// SharedStream feeds every trajectory from the same source, one after
// another. This reproduces a single sequential draw sequence and cannot be
// used with more than one worker.
type SharedStream struct {
	Src rand.Source
}

func (s SharedStream) Stream(int, int) rand.Source { return s.Src }

// NewSharedStream seeds a PCG source shared by all trajectories.
func NewSharedStream(seed uint64) SharedStream {
	return SharedStream{Src: rand.NewPCG(seed, seed)}
}

// PCGStreams partitions a seed into one PCG stream per run and trajectory,
// so trajectory i draws the same numbers no matter which worker runs it.
type PCGStreams struct {
	Seed uint64
}

func (s PCGStreams) Stream(run, trajectory int) rand.Source {
	return rand.NewPCG(s.Seed+uint64(run), uint64(trajectory)+1)
}
