// Package seqio holds the DNA alphabet, the substring hash and the sequence reading helpers used by dnatile
package seqio

const (
	// HashBase is the radix of the substring hash, one more than the number of symbols
	HashBase uint64 = 5

	// HashMod is the modulus of the substring hash
	HashMod uint64 = 10000000000007
)

// hashCodes converts "ATCG" to 1234, everything else is 0 and so invalid
var hashCodes = [256]uint64{
	'A': 1,
	'T': 2,
	'C': 3,
	'G': 4,
}

// complements maps each base to its Watson-Crick partner, everything else is 0 and so invalid
var complements = [256]byte{
	'A': 'T',
	'T': 'A',
	'C': 'G',
	'G': 'C',
}

// HashCode returns the hash digit for a base, or 0 if the base is not one of A/C/G/T
func HashCode(base byte) uint64 {
	return hashCodes[base]
}

// Roll extends a rolling hash by one hash digit
func Roll(hash, code uint64) uint64 {
	return (hash*HashBase + code) % HashMod
}

// Hash returns the rolling hash of a whole sequence
func Hash(seq []byte) (uint64, error) {
	var hash uint64
	for i, base := range seq {
		code := HashCode(base)
		if code == 0 {
			return 0, &InvalidSymbolError{Symbol: base, Position: i}
		}
		hash = Roll(hash, code)
	}
	return hash, nil
}

// Complement returns the complement of a single base
func Complement(base byte) (byte, error) {
	comp := complements[base]
	if comp == 0 {
		return 0, &InvalidSymbolError{Symbol: base, Position: -1}
	}
	return comp, nil
}

// ReverseComplement returns a new slice holding the reverse complement of seq
// the reported position of an invalid symbol refers to seq, not to the output
func ReverseComplement(seq []byte) ([]byte, error) {
	n := len(seq)
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		base := seq[n-1-i]
		comp := complements[base]
		if comp == 0 {
			return nil, &InvalidSymbolError{Symbol: base, Position: n - 1 - i}
		}
		rc[i] = comp
	}
	return rc, nil
}
