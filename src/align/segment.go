package align

// Segment is one exact match in a tiling, all coordinates are 0-based and inclusive
type Segment struct {
	RefStart          int
	RefEnd            int
	QueryStart        int
	QueryEnd          int
	ReverseComplement bool
}

// Len returns the number of bases covered by the segment
func (s Segment) Len() int {
	return s.QueryEnd - s.QueryStart + 1
}

// Strand returns the orientation of the reference the segment matched
func (s Segment) Strand() Orientation {
	if s.ReverseComplement {
		return ReverseComplement
	}
	return Forward
}

// Matched returns the reference bases covered by the segment, as they appear on the forward strand
func (s Segment) Matched(reference []byte) []byte {
	return reference[s.RefStart : s.RefEnd+1]
}
