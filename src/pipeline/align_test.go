package pipeline

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/will-rowe/dnatile/src/align"
	"github.com/will-rowe/dnatile/src/seqio"
	"github.com/will-rowe/dnatile/src/version"
)

var (
	testReference = []byte("ATGAAAGGATTAAAAGGGCTATTGGTTCTGGCTTTAGGCTTTACAGGACTACAGGTTTTTGGGCAACAGAACCCTGATATTAAAATTGAAAAATTAAAAGATAATTTATACG")
	testQueries   = ">forward\nGGCTTTAGGCTTTACAGG\n>mixed\nacagaaccctgaCCTAAAGCCAGAAC\n>reverse\nAAAAC\n>invalid\nACGTNACGT\n>split\nATGAAAGGCAACAGAACCC\n"
)

func newTestInfo() *Info {
	info := NewInfo(2)
	info.ReferenceID = "reference"
	info.Reference = testReference
	info.Align = AlignCmd{
		MaxRefLength: 1000,
		KmerSize:     7,
		SketchSize:   20,
	}
	return info
}

func runTestPipeline(t *testing.T, info *Info) (*SequenceChecker, *Reporter, string) {
	t.Helper()
	var buf bytes.Buffer
	reader := NewSequenceReader(info)
	checker := NewSequenceChecker(info)
	tiler, err := NewTiler(info)
	if err != nil {
		t.Fatal(err)
	}
	if tiler.IndexSize() == 0 {
		t.Fatal("reference index is empty")
	}
	reporter := NewReporter(info, &buf)
	reader.ConnectReader(strings.NewReader(testQueries))
	checker.Connect(reader)
	tiler.Connect(checker)
	reporter.Connect(tiler)
	alignmentPipeline := NewPipeline()
	alignmentPipeline.AddProcesses(reader, checker, tiler, reporter)
	if alignmentPipeline.GetNumProcesses() != 4 {
		t.Fatal("wrong number of processes in pipeline")
	}
	alignmentPipeline.Run()
	return checker, reporter, buf.String()
}

func TestAlignmentPipeline(t *testing.T) {
	info := newTestInfo()
	checker, reporter, out := runTestPipeline(t, info)

	received, rejected := checker.CollectStats()
	if received != 5 || rejected != 1 {
		t.Fatalf("expected 5 queries received and 1 rejected, got %d and %d", received, rejected)
	}

	results := reporter.CollectOutput()
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	expectedIDs := []string{"forward", "mixed", "reverse", "split"}
	for i, result := range results {
		if result.QueryID != expectedIDs[i] {
			t.Fatalf("results out of order: expected %v at %d, got %v", expectedIDs[i], i, result.QueryID)
		}
	}

	// a substring of the reference is one forward segment
	if results[0].Failed() || len(results[0].Segments) != 1 || results[0].Segments[0].ReverseComplement {
		t.Fatalf("unexpected result for forward query: %+v", results[0])
	}
	if results[0].Similarity < 0 {
		t.Fatal("forward query should have been sketched")
	}

	// the lowercase query is cleaned and tiled from both strands
	mixed := results[1]
	expected := []align.Segment{
		{RefStart: 65, RefEnd: 76, QueryStart: 0, QueryEnd: 11},
		{RefStart: 24, RefEnd: 37, QueryStart: 12, QueryEnd: 25, ReverseComplement: true},
	}
	if mixed.Failed() || len(mixed.Segments) != len(expected) {
		t.Fatalf("unexpected result for mixed query: %+v", mixed)
	}
	for i, seg := range mixed.Segments {
		if seg != expected[i] {
			t.Fatalf("mixed query segment %d: expected %+v, got %+v", i, expected[i], seg)
		}
	}

	// AAAAC only occurs on the reverse complement strand
	if results[2].Failed() || len(results[2].Segments) != 1 || results[2].Segments[0] != (align.Segment{RefStart: 54, RefEnd: 58, QueryStart: 0, QueryEnd: 4, ReverseComplement: true}) {
		t.Fatalf("unexpected result for reverse query: %+v", results[2])
	}

	// two reference pieces joined together need two segments
	if results[3].Failed() || len(results[3].Segments) != 2 {
		t.Fatalf("unexpected result for split query: %+v", results[3])
	}

	if len(info.Results) != 4 {
		t.Fatal("results were not added to the runtime info")
	}
	for _, expected := range []string{"Query: forward", "Query: split", "Matched segments: 2"} {
		if !strings.Contains(out, expected) {
			t.Fatalf("report is missing %q", expected)
		}
	}
}

func TestAlignmentBreakResult(t *testing.T) {
	info := NewInfo(1)
	info.Reference = []byte("AAAA")
	tiler, err := NewTiler(info)
	if err != nil {
		t.Fatal(err)
	}
	result, err := tiler.alignQuery(&seqio.Sequence{ID: "query", Seq: []byte("CCCC")}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Failed() || result.BreakPos != 0 {
		t.Fatalf("expected an alignment break at 0, got %+v", result)
	}
	if result.Similarity != -1 {
		t.Fatal("query should not be sketched when no k-mer size is set")
	}
	if result.Err != (&align.AlignmentBreakError{Position: 0}).Error() {
		t.Fatalf("unexpected error message: %v", result.Err)
	}
}

func TestNewTilerChecks(t *testing.T) {
	info := NewInfo(1)
	info.Reference = testReference
	info.Align.MaxRefLength = 10
	if _, err := NewTiler(info); err == nil {
		t.Fatal("reference longer than the maximum should be refused")
	}
	info.Align.MaxRefLength = 0
	info.Reference = []byte("ACGTN")
	if _, err := NewTiler(info); err == nil {
		t.Fatal("reference with an invalid base should be refused")
	}
}

func TestInfoDumpLoad(t *testing.T) {
	info := newTestInfo()
	runTestPipeline(t, info)
	dir, err := ioutil.TempDir("", "dnatile-pipeline")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "run.dnatile")
	if err := info.Dump(path); err != nil {
		t.Fatal(err)
	}
	loaded := new(Info)
	if err := loaded.Load(path); err != nil {
		t.Fatal(err)
	}
	if loaded.Version != version.VERSION || loaded.RunID != info.RunID {
		t.Fatal("saved run has the wrong version or run ID")
	}
	if !bytes.Equal(loaded.Reference, info.Reference) {
		t.Fatal("saved run has the wrong reference")
	}
	if len(loaded.Results) != len(info.Results) {
		t.Fatalf("saved run has %d results, expected %d", len(loaded.Results), len(info.Results))
	}
	for i, result := range loaded.Results {
		if result.QueryID != info.Results[i].QueryID || len(result.Segments) != len(info.Results[i].Segments) {
			t.Fatalf("saved result %d does not match", i)
		}
		for j, seg := range result.Segments {
			if seg != info.Results[i].Segments[j] {
				t.Fatalf("saved segment %d of result %d does not match", j, i)
			}
		}
	}
	if err := loaded.LoadFromBytes(nil); err == nil {
		t.Fatal("loading an empty run should fail")
	}
}

func TestConnectSequences(t *testing.T) {
	info := newTestInfo()
	var buf bytes.Buffer
	reader := NewSequenceReader(info)
	checker := NewSequenceChecker(info)
	tiler, err := NewTiler(info)
	if err != nil {
		t.Fatal(err)
	}
	reporter := NewReporter(info, &buf)
	query := &seqio.Sequence{ID: "query", Seq: []byte("GGCTTTAGGCTTTACAGG")}
	reader.ConnectSequences(query)
	checker.Connect(reader)
	tiler.Connect(checker)
	reporter.Connect(tiler)
	alignmentPipeline := NewPipeline()
	alignmentPipeline.AddProcesses(reader, checker, tiler, reporter)
	alignmentPipeline.Run()

	results := reporter.CollectOutput()
	if len(results) != 1 || results[0].QueryID != "query" {
		t.Fatalf("the query ID was not kept: %+v", results)
	}
	if !strings.Contains(buf.String(), "Query: query") {
		t.Fatal("report does not use the query ID")
	}
}
