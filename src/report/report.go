// Package report renders alignment results for the terminal
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/will-rowe/dnatile/src/align"
)

// Result is the outcome of aligning one query
type Result struct {
	Order       int // position of the query in the input
	QueryID     string
	QueryLength int
	Segments    []align.Segment
	Similarity  float64 // estimated k-mer Jaccard similarity to the reference, -1 if not sketched
	Err         string  // set when the query could not be tiled
	BreakPos    int     // the query position of an alignment break, -1 if there was none
}

// Failed reports whether the query could not be aligned
func (r *Result) Failed() bool {
	return r.Err != ""
}

// styles holds the lipgloss styles used by a Renderer
type styles struct {
	banner  lipgloss.Style
	step    lipgloss.Style
	input   lipgloss.Style
	value   lipgloss.Style
	count   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	number  lipgloss.Style
	strand  lipgloss.Style
	bases   lipgloss.Style
	length  lipgloss.Style
	failure lipgloss.Style
}

// Renderer writes styled reports to a writer
type Renderer struct {
	w      io.Writer
	styles styles
}

// NewRenderer returns a Renderer for w, if colour is false all text is written unstyled
func NewRenderer(w io.Writer, colour bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	style := func(s lipgloss.Style) lipgloss.Style {
		if !colour {
			return lg.NewStyle()
		}
		return s
	}
	return &Renderer{
		w: w,
		styles: styles{
			banner:  style(lg.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))),
			step:    style(lg.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))),
			input:   style(lg.NewStyle().Foreground(lipgloss.Color("6"))),
			value:   style(lg.NewStyle().Foreground(lipgloss.Color("3"))),
			count:   style(lg.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))),
			title:   style(lg.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))),
			label:   style(lg.NewStyle().Foreground(lipgloss.Color("8"))),
			number:  style(lg.NewStyle().Foreground(lipgloss.Color("5"))),
			strand:  style(lg.NewStyle().Foreground(lipgloss.Color("3"))),
			bases:   style(lg.NewStyle().Foreground(lipgloss.Color("6"))),
			length:  style(lg.NewStyle().Foreground(lipgloss.Color("2"))),
			failure: style(lg.NewStyle().Foreground(lipgloss.Color("1"))),
		},
	}
}

// Banner writes the tool banner
func (r *Renderer) Banner() {
	fmt.Fprintf(r.w, "\n%s\n", r.styles.banner.Render("======== DNA Sequence Alignment Tool ========"))
}

// Prompt writes an input step for interactive use, the cursor is left at the end of the line
func (r *Renderer) Prompt(step, total int, title, request string) {
	fmt.Fprintf(r.w, "\n%s\n", r.styles.step.Render(fmt.Sprintf(">>> Step %d/%d: %s", step, total, title)))
	fmt.Fprintf(r.w, "%s ", request)
}

// Header writes the summary lines for one aligned query
func (r *Renderer) Header(referenceLength int, result *Result) {
	s := r.styles
	fmt.Fprintf(r.w, "\n%s\n", s.banner.Render("======== Alignment Results ========"))
	if result.QueryID != "" {
		fmt.Fprintf(r.w, "Query: %s\n", s.input.Render(result.QueryID))
	}
	fmt.Fprintf(r.w, "Reference length: %s\n", s.value.Render(bp(referenceLength)))
	fmt.Fprintf(r.w, "Query length: %s\n", s.value.Render(bp(result.QueryLength)))
	if result.Similarity >= 0 {
		fmt.Fprintf(r.w, "K-mer similarity: %s\n", s.value.Render(strconv.FormatFloat(result.Similarity, 'f', 2, 64)))
	}
}

// Result writes the full report for one query, matched sequences are sliced from the reference
func (r *Renderer) Result(reference []byte, result *Result) {
	s := r.styles
	r.Header(len(reference), result)
	if result.Failed() {
		fmt.Fprintf(r.w, "%s\n\n", s.failure.Render("Error: "+result.Err))
		fmt.Fprintf(r.w, "%s\n", s.banner.Render("=========================="))
		return
	}
	fmt.Fprintf(r.w, "%s\n\n", s.count.Render(fmt.Sprintf("Matched segments: %d", len(result.Segments))))
	for i, seg := range result.Segments {
		matched := seg.Matched(reference)
		fmt.Fprintf(r.w, "%s\n", s.title.Render(fmt.Sprintf("Segment %d:", i+1)))
		fmt.Fprintf(r.w, "  %s [%s-%s]\n", s.label.Render("Ref position:"), s.number.Render(strconv.Itoa(seg.RefStart)), s.number.Render(strconv.Itoa(seg.RefEnd)))
		fmt.Fprintf(r.w, "  %s [%s-%s]\n", s.label.Render("Query position:"), s.number.Render(strconv.Itoa(seg.QueryStart)), s.number.Render(strconv.Itoa(seg.QueryEnd)))
		fmt.Fprintf(r.w, "  %s %s\n", s.label.Render("Strand:"), s.strand.Render(seg.Strand().String()))
		fmt.Fprintf(r.w, "  %s %s\n", s.label.Render("Matched sequence:"), s.bases.Render(string(matched)))
		fmt.Fprintf(r.w, "  %s %s\n\n", s.label.Render("Length:"), s.length.Render(bp(len(matched))))
	}
	fmt.Fprintf(r.w, "%s\n", s.banner.Render("=========================="))
}

// Error writes an error message
func (r *Renderer) Error(err error) {
	fmt.Fprintf(r.w, "\n%s\n", r.styles.failure.Render("Error: "+err.Error()))
}

func bp(n int) string {
	return strconv.Itoa(n) + " bp"
}
