package pipeline

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/will-rowe/dnatile/src/report"
)

// Reporter is a pipeline process that collects alignment results and renders them in input order
type Reporter struct {
	info     *Info
	renderer *report.Renderer
	input    chan *report.Result
	results  []*report.Result
}

// NewReporter is the constructor
func NewReporter(info *Info, w io.Writer) *Reporter {
	return &Reporter{info: info, renderer: report.NewRenderer(w, info.Align.Colour)}
}

// Connect is the method to connect the Reporter to the output of a Tiler
func (proc *Reporter) Connect(previous *Tiler) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *Reporter) Run() {
	for result := range proc.input {
		proc.results = append(proc.results, result)
	}
	sort.Slice(proc.results, func(i, j int) bool { return proc.results[i].Order < proc.results[j].Order })
	failed := 0
	for _, result := range proc.results {
		if result.Failed() {
			failed++
		}
		proc.renderer.Result(proc.info.Reference, result)
	}
	proc.info.Results = proc.results
	log.Infof("\tnumber of queries aligned: %d", len(proc.results)-failed)
	if failed > 0 {
		log.Warnf("\tnumber of queries with an alignment break: %d", failed)
	}
}

// CollectOutput returns the results in input order, call it once the pipeline has finished
func (proc *Reporter) CollectOutput() []*report.Result {
	return proc.results
}
