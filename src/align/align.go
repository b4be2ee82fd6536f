package align

// Align tiles a query with the fewest exact matches to either strand of a reference
// both sequences must already be uppercase A/C/G/T
func Align(reference, query []byte) ([]Segment, error) {
	idx, err := NewIndex(reference)
	if err != nil {
		return nil, err
	}
	return AlignWithIndex(idx, query)
}

// AlignWithIndex tiles a query against a prebuilt index, the index is only read so it can be shared
func AlignWithIndex(idx *Index, query []byte) ([]Segment, error) {
	tiling, err := FindOptimalTiling(query, idx)
	if err != nil {
		return nil, err
	}
	return tiling.Reconstruct()
}
