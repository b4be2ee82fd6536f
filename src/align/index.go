// Package align tiles a query sequence with the fewest exact matches to a reference, on either strand
package align

import (
	"github.com/will-rowe/dnatile/src/seqio"
)

// Orientation is the strand of the reference an index pass is built from
type Orientation int

const (
	// Forward indexes the reference as given
	Forward Orientation = iota

	// ReverseComplement indexes the reverse complement of the reference
	ReverseComplement
)

// String returns the strand name used in reports
func (o Orientation) String() string {
	if o == ReverseComplement {
		return "Reverse complement"
	}
	return "Forward"
}

// Occurrence is the witness position kept for a substring hash
// Start and End are inclusive and always in forward reference coordinates
type Occurrence struct {
	Start   int
	End     int
	Reverse bool
}

// Index relates the hash of every reference substring, from both strands, to a single occurrence
// hash collisions are not resolved, the first occurrence inserted for a hash is the only one kept
type Index struct {
	refLen int
	lookup map[uint64]Occurrence
}

// NewIndex builds the index for a reference, forward strand first and then the reverse complement
// the order matters, a substring present on both strands is recorded as a forward match
func NewIndex(reference []byte) (*Index, error) {
	idx := &Index{
		refLen: len(reference),
		lookup: make(map[uint64]Occurrence),
	}
	if err := idx.Build(reference, Forward); err != nil {
		return nil, err
	}
	if err := idx.Build(reference, ReverseComplement); err != nil {
		return nil, err
	}
	return idx, nil
}

// Build adds every substring of one orientation of the reference to the index
// existing hashes are never overwritten
func (idx *Index) Build(reference []byte, orientation Orientation) error {
	if idx.lookup == nil {
		idx.lookup = make(map[uint64]Occurrence)
	}
	idx.refLen = len(reference)
	seq := reference
	if orientation == ReverseComplement {
		rc, err := seqio.ReverseComplement(reference)
		if err != nil {
			return err
		}
		seq = rc
	} else if err := seqio.Validate(reference); err != nil {
		return err
	}
	n := len(seq)
	for start := 0; start < n; start++ {
		var hash uint64
		for end := start; end < n; end++ {
			hash = seqio.Roll(hash, seqio.HashCode(seq[end]))
			if _, ok := idx.lookup[hash]; ok {
				continue
			}
			if orientation == ReverseComplement {
				idx.lookup[hash] = Occurrence{Start: n - end - 1, End: n - start - 1, Reverse: true}
			} else {
				idx.lookup[hash] = Occurrence{Start: start, End: end}
			}
		}
	}
	return nil
}

// Lookup returns the occurrence recorded for a substring hash
func (idx *Index) Lookup(hash uint64) (Occurrence, bool) {
	occ, ok := idx.lookup[hash]
	return occ, ok
}

// Size returns the number of distinct hashes held in the index
func (idx *Index) Size() int {
	return len(idx.lookup)
}

// ReferenceLength returns the length of the indexed reference
func (idx *Index) ReferenceLength() int {
	return idx.refLen
}
