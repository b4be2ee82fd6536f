package seqio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	biogoio "github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// ReadSequences reads every sequence from r
// FASTA input is detected by a leading '>', anything else is read as one sequence per non-blank line
// the sequences are returned as read, call BaseCheck on each before aligning
func ReadSequences(r io.Reader) ([]*Sequence, error) {
	br := bufio.NewReader(r)
	isFasta, err := peekFasta(br)
	if err != nil {
		return nil, err
	}
	if isFasta {
		return readFasta(br)
	}
	return readLines(br)
}

// peekFasta skips leading whitespace and reports whether the first character is a FASTA header marker
func peekFasta(br *bufio.Reader) (bool, error) {
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrap(err, "could not read sequence input")
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return false, err
		}
		return c == '>', nil
	}
}

func readFasta(r io.Reader) ([]*Sequence, error) {
	var seqs []*Sequence
	template := linear.NewSeq("", nil, alphabet.DNA)
	scanner := biogoio.NewScanner(fasta.NewReader(r, template))
	for scanner.Next() {
		record, ok := scanner.Seq().(*linear.Seq)
		if !ok {
			return nil, errors.New("unexpected sequence type from FASTA reader")
		}
		seq := make([]byte, len(record.Seq))
		for i, letter := range record.Seq {
			seq[i] = byte(letter)
		}
		seqs = append(seqs, &Sequence{ID: record.Name(), Seq: seq})
	}
	if err := scanner.Error(); err != nil {
		return nil, errors.Wrap(err, "could not parse FASTA input")
	}
	return seqs, nil
}

func readLines(r io.Reader) ([]*Sequence, error) {
	var seqs []*Sequence
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		// copy the line, the scanner reuses its buffer
		seqs = append(seqs, &Sequence{
			ID:  fmt.Sprintf("sequence-%d", len(seqs)+1),
			Seq: append([]byte(nil), line...),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read sequence input")
	}
	return seqs, nil
}
