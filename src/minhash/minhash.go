// Package minhash contains a bottom-k MinHash sketch, used to estimate how much k-mer content
// a query shares with a reference before it is aligned. It uses the ntHash rolling hash function.
package minhash

import (
	"container/heap"
	"sort"

	"github.com/pkg/errors"
	"github.com/will-rowe/ntHash"
)

// CANONICAL tells ntHash to return the canonical k-mer, so a sequence and its reverse complement sketch the same
const CANONICAL bool = true

// Sketch is the bottom-k MinHash sketch of the distinct canonical k-mers in one or more sequences
type Sketch struct {
	kmerSize   int
	sketchSize int
	sketch     *intHeap
	held       map[uint64]struct{}
}

// NewSketch is the constructor for a Sketch
func NewSketch(kmerSize, sketchSize int) *Sketch {
	return &Sketch{
		kmerSize:   kmerSize,
		sketchSize: sketchSize,
		sketch:     &intHeap{},
		held:       make(map[uint64]struct{}, sketchSize),
	}
}

// Add decomposes a sequence to k-mers, hashes them and keeps the smallest distinct values
func (s *Sketch) Add(sequence []byte) error {
	if len(sequence) < s.kmerSize {
		return errors.Errorf("sequence length (%d) is shorter than k-mer length (%d)", len(sequence), s.kmerSize)
	}
	hasher, err := ntHash.New(&sequence, uint(s.kmerSize))
	if err != nil {
		return errors.Wrap(err, "could not start ntHash")
	}
	for hv := range hasher.Hash(CANONICAL) {
		if _, ok := s.held[hv]; ok {
			continue
		}
		if len(*s.sketch) < s.sketchSize {
			heap.Push(s.sketch, hv)
			s.held[hv] = struct{}{}
		} else if hv < (*s.sketch)[0] {
			// swap out the largest value held
			delete(s.held, (*s.sketch)[0])
			(*s.sketch)[0] = hv
			heap.Fix(s.sketch, 0)
			s.held[hv] = struct{}{}
		}
	}
	return nil
}

// Values returns the sketch in ascending order
func (s *Sketch) Values() []uint64 {
	values := make([]uint64, len(*s.sketch))
	copy(values, *s.sketch)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// Similarity estimates the Jaccard similarity of the k-mer sets behind two sketches
// the estimate is taken from the bottom-k of the union of both sketches
func (s *Sketch) Similarity(other *Sketch) (float64, error) {
	if s.kmerSize != other.kmerSize {
		return 0, errors.Errorf("can't compare sketches with different k-mer sizes (%d and %d)", s.kmerSize, other.kmerSize)
	}
	a, b := s.Values(), other.Values()
	k := s.sketchSize
	if other.sketchSize < k {
		k = other.sketchSize
	}
	// walk the merged values in order, counting those present in both
	shared, seen := 0, 0
	i, j := 0, 0
	for seen < k && (i < len(a) || j < len(b)) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			i++
		case i == len(a) || b[j] < a[i]:
			j++
		default:
			shared++
			i++
			j++
		}
		seen++
	}
	if seen == 0 {
		return 0, nil
	}
	return float64(shared) / float64(seen), nil
}

// intHeap is a max-heap of uint64s, the largest value sits at index 0 so it can be swapped out
type intHeap []uint64

func (h intHeap) Less(i, j int) bool { return h[i] > h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h intHeap) Len() int           { return len(h) }

// Push is a method to add an element to the heap
func (h *intHeap) Push(x interface{}) {
	*h = append(*h, x.(uint64))
}

// Pop is a method to remove an element from the heap
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
