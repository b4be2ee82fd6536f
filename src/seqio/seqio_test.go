package seqio

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

var (
	testSeq   = []byte("ACTGCGTGCGTGAAACGTGCACGTGACGTG")
	testSeqRC = []byte("CACGTCACGTGCACGTTTCACGCACGCAGT")
)

func TestReverseComplement(t *testing.T) {
	rc, err := ReverseComplement(testSeq)
	if err != nil {
		t.Fatal(err)
	}
	if string(rc) != string(testSeqRC) {
		t.Fatalf("incorrect reverse complement: %s", rc)
	}
	// reverse complementing twice gives the original sequence back
	rcrc, err := ReverseComplement(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(rcrc) != string(testSeq) {
		t.Fatalf("double reverse complement did not give original: %s", rcrc)
	}
	// the input is left untouched
	if string(testSeq) != "ACTGCGTGCGTGAAACGTGCACGTGACGTG" {
		t.Fatal("reverse complement modified its input")
	}
	if rc, err := ReverseComplement(nil); err != nil || len(rc) != 0 {
		t.Fatal("empty sequence should give an empty reverse complement")
	}
}

func TestComplementInvolution(t *testing.T) {
	for _, base := range []byte("ACGT") {
		comp, err := Complement(base)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Complement(comp)
		if err != nil {
			t.Fatal(err)
		}
		if back != base {
			t.Fatalf("complement of complement of %c is %c", base, back)
		}
	}
	pairs := map[byte]byte{'A': 'T', 'C': 'G'}
	for a, b := range pairs {
		if comp, _ := Complement(a); comp != b {
			t.Fatalf("complement of %c should be %c, got %c", a, b, comp)
		}
	}
	if _, err := Complement('N'); err == nil {
		t.Fatal("N should not have a complement")
	}
}

func TestReverseComplementInvalid(t *testing.T) {
	_, err := ReverseComplement([]byte("ACNGT"))
	var symErr *InvalidSymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("expected an InvalidSymbolError, got %v", err)
	}
	if symErr.Symbol != 'N' || symErr.Position != 2 {
		t.Fatalf("wrong symbol or position reported: %c at %d", symErr.Symbol, symErr.Position)
	}
}

func TestHash(t *testing.T) {
	// A=1 T=2 C=3 G=4 read as a base-5 numeral
	hash, err := Hash([]byte("ATCG"))
	if err != nil {
		t.Fatal(err)
	}
	if hash != 1*125+2*25+3*5+4 {
		t.Fatalf("incorrect hash: %d", hash)
	}
	// no base maps to zero, so a prefix never hashes like the longer string
	a, _ := Hash([]byte("A"))
	aa, _ := Hash([]byte("AA"))
	if a == aa {
		t.Fatal("A and AA should not share a hash")
	}
	// rolling one base at a time matches hashing the whole sequence
	var rolled uint64
	for _, base := range testSeq {
		rolled = Roll(rolled, HashCode(base))
	}
	whole, _ := Hash(testSeq)
	if rolled != whole {
		t.Fatal("rolled hash does not match whole sequence hash")
	}
	// the modulus keeps long sequences in range
	long := []byte(strings.Repeat("G", 1000))
	if h, _ := Hash(long); h >= HashMod {
		t.Fatalf("hash out of range: %d", h)
	}
	if _, err := Hash([]byte("ACGX")); err == nil {
		t.Fatal("hash of invalid sequence should fail")
	}
}

func TestBaseCheck(t *testing.T) {
	seq := &Sequence{ID: "query", Seq: []byte("  acgtTGCA \n")}
	if err := seq.BaseCheck(); err != nil {
		t.Fatal(err)
	}
	if string(seq.Seq) != "ACGTTGCA" {
		t.Fatalf("sequence not cleaned: %q", seq.Seq)
	}
	empty := &Sequence{ID: "empty", Seq: []byte(" \t\n")}
	if err := empty.BaseCheck(); err != ErrEmptySequence {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
	bad := &Sequence{ID: "Reference sequence", Seq: []byte("ACGUA")}
	err := bad.BaseCheck()
	var symErr *InvalidSymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("expected an InvalidSymbolError, got %v", err)
	}
	if symErr.Position != 3 || symErr.Symbol != 'U' {
		t.Fatalf("wrong symbol or position reported: %c at %d", symErr.Symbol, symErr.Position)
	}
	if !strings.HasPrefix(err.Error(), "Reference sequence contains invalid character: 'U'") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestValidateLowercaseHint(t *testing.T) {
	err := Validate([]byte("ACgT"))
	if err == nil {
		t.Fatal("lowercase base should not validate")
	}
	if !strings.Contains(err.Error(), "detected lowercase") {
		t.Fatalf("missing lowercase hint: %v", err)
	}
	err = Validate([]byte("ACnT"))
	if err == nil {
		t.Fatal("n should not validate")
	}
	if strings.Contains(err.Error(), "detected lowercase") {
		t.Fatalf("lowercase hint given for a base that is invalid in any case: %v", err)
	}
	if err := Validate([]byte("ACGT")); err != nil {
		t.Fatal(err)
	}
}

func TestReadSequencesFasta(t *testing.T) {
	input := ">ref description\nACGTACGT\nTTGA\n>query\nacgt\n"
	seqs, err := ReadSequences(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(seqs))
	}
	if seqs[0].ID != "ref" || string(seqs[0].Seq) != "ACGTACGTTTGA" {
		t.Fatalf("unexpected first record: %s %s", seqs[0].ID, seqs[0].Seq)
	}
	if seqs[1].ID != "query" || string(seqs[1].Seq) != "acgt" {
		t.Fatalf("unexpected second record: %s %s", seqs[1].ID, seqs[1].Seq)
	}
}

func TestReadSequencesLines(t *testing.T) {
	input := "\n  ACGTACGT  \n\nttga\n"
	seqs, err := ReadSequences(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 2 {
		t.Fatalf("expected 2 sequences, got %d", len(seqs))
	}
	if seqs[0].ID != "sequence-1" || string(seqs[0].Seq) != "ACGTACGT" {
		t.Fatalf("unexpected first sequence: %s %s", seqs[0].ID, seqs[0].Seq)
	}
	if seqs[1].ID != "sequence-2" || string(seqs[1].Seq) != "ttga" {
		t.Fatalf("unexpected second sequence: %s %s", seqs[1].ID, seqs[1].Seq)
	}
	seqs, err = ReadSequences(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 0 {
		t.Fatal("empty input should give no sequences")
	}
}
