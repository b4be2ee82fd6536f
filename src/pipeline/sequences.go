package pipeline

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/will-rowe/dnatile/src/misc"
	"github.com/will-rowe/dnatile/src/seqio"
)

// SequenceReader is a pipeline process that streams sequences from files or STDIN
type SequenceReader struct {
	info   *Info
	input  []string
	reader io.Reader
	seqs   []*seqio.Sequence
	output chan *seqio.Sequence
}

// NewSequenceReader is the constructor
func NewSequenceReader(info *Info) *SequenceReader {
	return &SequenceReader{info: info, output: make(chan *seqio.Sequence, BUFFERSIZE)}
}

// Connect is the method to connect the SequenceReader to some files, if none are given STDIN is read
func (proc *SequenceReader) Connect(input []string) {
	proc.input = input
}

// ConnectReader is the method to connect the SequenceReader to an open reader
func (proc *SequenceReader) ConnectReader(r io.Reader) {
	proc.reader = r
}

// ConnectSequences is the method to connect the SequenceReader to sequences that are already in memory
func (proc *SequenceReader) ConnectSequences(seqs ...*seqio.Sequence) {
	proc.seqs = seqs
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *SequenceReader) Run() {
	defer close(proc.output)
	if len(proc.seqs) != 0 {
		for _, seq := range proc.seqs {
			proc.output <- seq
		}
		return
	}
	if len(proc.input) == 0 {
		r := proc.reader
		if r == nil {
			r = os.Stdin
		}
		seqs, err := seqio.ReadSequences(r)
		misc.ErrorCheck(err)
		for _, seq := range seqs {
			proc.output <- seq
		}
		return
	}
	for _, file := range proc.input {
		fh, err := misc.OpenFile(file)
		misc.ErrorCheck(err)
		seqs, err := seqio.ReadSequences(fh)
		fh.Close()
		misc.ErrorCheck(err)
		log.Debugf("\tread %d sequences from %v", len(seqs), file)
		for _, seq := range seqs {
			proc.output <- seq
		}
	}
}

// SequenceChecker is a pipeline process that cleans sequences and drops any that are not pure A/C/G/T
type SequenceChecker struct {
	info     *Info
	input    chan *seqio.Sequence
	output   chan *seqio.Sequence
	received int
	rejected int
}

// NewSequenceChecker is the constructor
func NewSequenceChecker(info *Info) *SequenceChecker {
	return &SequenceChecker{info: info, output: make(chan *seqio.Sequence, BUFFERSIZE)}
}

// Connect is the method to connect the SequenceChecker to the output of a SequenceReader
func (proc *SequenceChecker) Connect(previous *SequenceReader) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *SequenceChecker) Run() {
	defer close(proc.output)
	for seq := range proc.input {
		proc.received++
		if err := seq.BaseCheck(); err != nil {
			proc.rejected++
			log.Warnf("\tskipping query %v: %v", seq.ID, err)
			continue
		}
		proc.output <- seq
	}
	log.Infof("\tnumber of queries received: %d", proc.received)
	if proc.rejected > 0 {
		log.Warnf("\tnumber of queries rejected: %d", proc.rejected)
	}
}

// CollectStats returns the number of sequences received and rejected, call it once the pipeline has finished
func (proc *SequenceChecker) CollectStats() (int, int) {
	return proc.received, proc.rejected
}
