package seqio

import (
	"bytes"

	"github.com/pkg/errors"
)

// ErrEmptySequence is returned by BaseCheck when a sequence has no bases left after trimming
var ErrEmptySequence = errors.New("sequence cannot be empty")

// Sequence is a named DNA sequence
type Sequence struct {
	ID  string
	Seq []byte
}

// Clean trims surrounding whitespace and converts all bases to uppercase
func (s *Sequence) Clean() {
	s.Seq = bytes.ToUpper(bytes.TrimSpace(s.Seq))
}

// BaseCheck cleans the sequence and then checks it is non-empty and contains only A/C/G/T
func (s *Sequence) BaseCheck() error {
	s.Clean()
	if len(s.Seq) == 0 {
		return ErrEmptySequence
	}
	if err := firstInvalid(s.Seq); err != nil {
		err.Name = s.ID
		return err
	}
	return nil
}

// Validate checks a sequence only holds A/C/G/T, returning an *InvalidSymbolError for the first offending base
func Validate(seq []byte) error {
	if err := firstInvalid(seq); err != nil {
		return err
	}
	return nil
}

func firstInvalid(seq []byte) *InvalidSymbolError {
	for i, base := range seq {
		if hashCodes[base] == 0 {
			return &InvalidSymbolError{Symbol: base, Position: i}
		}
	}
	return nil
}
