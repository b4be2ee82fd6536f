package pipeline

import (
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/will-rowe/dnatile/src/align"
	"github.com/will-rowe/dnatile/src/minhash"
	"github.com/will-rowe/dnatile/src/misc"
	"github.com/will-rowe/dnatile/src/report"
	"github.com/will-rowe/dnatile/src/seqio"
	"golang.org/x/sync/errgroup"
)

// Tiler is a pipeline process that aligns each query against one reference index
// the index is built once and only read afterwards, so queries are aligned concurrently
type Tiler struct {
	info      *Info
	index     *align.Index
	refSketch *minhash.Sketch
	input     chan *seqio.Sequence
	output    chan *report.Result
}

// NewTiler is the constructor, it indexes the reference held in the runtime info
func NewTiler(info *Info) (*Tiler, error) {
	if info.Align.MaxRefLength > 0 && len(info.Reference) > info.Align.MaxRefLength {
		return nil, errors.Errorf("reference length (%d) exceeds the maximum of %d, every substring is indexed so memory grows with the square of the length", len(info.Reference), info.Align.MaxRefLength)
	}
	idx, err := align.NewIndex(info.Reference)
	if err != nil {
		return nil, errors.Wrap(err, "could not index reference")
	}
	proc := &Tiler{
		info:   info,
		index:  idx,
		output: make(chan *report.Result, BUFFERSIZE),
	}
	if info.Align.KmerSize > 0 && len(info.Reference) >= info.Align.KmerSize {
		proc.refSketch = minhash.NewSketch(info.Align.KmerSize, info.Align.SketchSize)
		if err := proc.refSketch.Add(info.Reference); err != nil {
			return nil, errors.Wrap(err, "could not sketch reference")
		}
	}
	return proc, nil
}

// IndexSize returns the number of distinct substring hashes in the reference index
func (proc *Tiler) IndexSize() int {
	return proc.index.Size()
}

// Connect is the method to connect the Tiler to the output of a SequenceChecker
func (proc *Tiler) Connect(previous *SequenceChecker) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *Tiler) Run() {
	defer close(proc.output)
	numProc := proc.info.NumProc
	if numProc < 1 {
		numProc = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(numProc)
	order := 0
	for query := range proc.input {
		query, position := query, order
		order++
		g.Go(func() error {
			result, err := proc.alignQuery(query, position)
			if err != nil {
				return err
			}
			proc.output <- result
			return nil
		})
	}
	misc.ErrorCheck(g.Wait())
}

// alignQuery tiles one query, an alignment break is recorded on the result rather than returned
func (proc *Tiler) alignQuery(query *seqio.Sequence, position int) (*report.Result, error) {
	result := &report.Result{
		Order:       position,
		QueryID:     query.ID,
		QueryLength: len(query.Seq),
		Similarity:  -1,
		BreakPos:    -1,
	}
	if proc.refSketch != nil && len(query.Seq) >= proc.info.Align.KmerSize {
		querySketch := minhash.NewSketch(proc.info.Align.KmerSize, proc.info.Align.SketchSize)
		if err := querySketch.Add(query.Seq); err != nil {
			return nil, errors.Wrapf(err, "could not sketch %v", query.ID)
		}
		similarity, err := proc.refSketch.Similarity(querySketch)
		if err != nil {
			return nil, err
		}
		result.Similarity = similarity
	}
	segments, err := align.AlignWithIndex(proc.index, query.Seq)
	var breakErr *align.AlignmentBreakError
	switch {
	case errors.As(err, &breakErr):
		result.Err = breakErr.Error()
		result.BreakPos = breakErr.Position
		log.Debugf("\tquery %v could not be tiled past position %d", query.ID, breakErr.Position)
	case err != nil:
		return nil, errors.Wrapf(err, "could not align %v", query.ID)
	default:
		result.Segments = segments
	}
	return result, nil
}
