package align

import (
	"math"

	"github.com/will-rowe/dnatile/src/seqio"
)

// unreachable is the cost of a query position that can't be tiled
// no segment is ever added to it, so it stays within a 32 bit int
const unreachable = math.MaxInt32

// trace is the back-pointer for one query position, set is false when the position can't be tiled
type trace struct {
	occurrence Occurrence
	next       int
	queryStart int
	queryEnd   int
	set        bool
}

// Tiling holds the dynamic programming result for one query
type Tiling struct {
	queryLen int
	cost     []int
	traces   []trace
}

// FindOptimalTiling finds, for every query position, the fewest indexed substrings that tile the rest of the query
//
// positions are processed right to left as each one depends on the positions after it.
// Equal cost choices at a position are resolved in favour of a forward match over a reverse
// complement one; choices on the same strand keep the first found, which is the shortest.
func FindOptimalTiling(query []byte, idx *Index) (*Tiling, error) {
	if err := seqio.Validate(query); err != nil {
		return nil, err
	}
	n := len(query)
	tiling := &Tiling{
		queryLen: n,
		cost:     make([]int, n+1),
		traces:   make([]trace, n+1),
	}
	for i := 0; i < n; i++ {
		tiling.cost[i] = unreachable
	}
	for start := n - 1; start >= 0; start-- {
		var hash uint64
		for end := start; end < n; end++ {
			hash = seqio.Roll(hash, seqio.HashCode(query[end]))
			occ, ok := idx.lookup[hash]
			if !ok {
				continue
			}
			// a match that ends before an untileable position can't be part of a tiling
			if tiling.cost[end+1] == unreachable {
				continue
			}
			candidate := tiling.cost[end+1] + 1
			current := tiling.cost[start]
			if candidate < current || (candidate == current && !occ.Reverse && tiling.traces[start].occurrence.Reverse) {
				tiling.cost[start] = candidate
				tiling.traces[start] = trace{
					occurrence: occ,
					next:       end + 1,
					queryStart: start,
					queryEnd:   end,
					set:        true,
				}
			}
		}
	}
	return tiling, nil
}

// Cost returns the minimum number of segments needed to tile the whole query, or -1 if it can't be tiled
func (tiling *Tiling) Cost() int {
	if tiling.cost[0] >= unreachable {
		return -1
	}
	return tiling.cost[0]
}

// QueryLength returns the length of the tiled query
func (tiling *Tiling) QueryLength() int {
	return tiling.queryLen
}

// Walk returns a Walker that follows the back-pointers from the start of the query
func (tiling *Tiling) Walk() *Walker {
	return &Walker{tiling: tiling}
}

// Reconstruct returns the segments of the optimal tiling in query order
func (tiling *Tiling) Reconstruct() ([]Segment, error) {
	var segments []Segment
	walker := tiling.Walk()
	for walker.Next() {
		segments = append(segments, walker.Segment())
	}
	if err := walker.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}

// Walker yields the segments of a tiling one at a time, it can't be restarted
type Walker struct {
	tiling  *Tiling
	pos     int
	segment Segment
	err     error
	done    bool
}

// Next advances to the next segment, returning false at the end of the query or on an alignment break
func (w *Walker) Next() bool {
	if w.done {
		return false
	}
	if w.pos >= w.tiling.queryLen {
		w.done = true
		return false
	}
	t := w.tiling.traces[w.pos]
	if !t.set {
		w.err = &AlignmentBreakError{Position: w.pos}
		w.done = true
		return false
	}
	w.segment = Segment{
		RefStart:          t.occurrence.Start,
		RefEnd:            t.occurrence.End,
		QueryStart:        t.queryStart,
		QueryEnd:          t.queryEnd,
		ReverseComplement: t.occurrence.Reverse,
	}
	w.pos = t.next
	return true
}

// Segment returns the segment found by the last call to Next
func (w *Walker) Segment() Segment {
	return w.segment
}

// Err returns the alignment break that stopped the walk, if there was one
func (w *Walker) Err() error {
	return w.err
}
