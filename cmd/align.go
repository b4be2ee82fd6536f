// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/will-rowe/dnatile/src/misc"
	"github.com/will-rowe/dnatile/src/pipeline"
	"github.com/will-rowe/dnatile/src/report"
	"github.com/will-rowe/dnatile/src/seqio"
	"github.com/will-rowe/dnatile/src/version"
)

// the command line arguments
var (
	referenceFile *string   // file containing the reference sequence
	queryFiles    *[]string // list of files containing query sequences
	maxRefLength  *int      // longest reference that will be indexed
	kmerSize      *int      // size of k-mer used for the similarity estimate
	sketchSize    *int      // size of MinHash sketch used for the similarity estimate
	saveFile      *string   // file to save the run to
	noColour      *bool     // flag to turn off styled output
)

// accepted file extensions for sequence input, a trailing compression extension is allowed
var seqExts = []string{"fasta", "fa", "fna", "fas", "seq", "txt"}

// the align command (used by cobra)
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Tile query sequences with exact matches from a reference",
	Long: `Tile query sequences with exact matches from a reference.

Every substring of the reference, and of its reverse complement, is indexed. Each query
is then split into the fewest segments that occur exactly in the index. Without a
reference file the reference and a query are read as two lines from STDIN.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAlign()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	referenceFile = alignCmd.Flags().StringP("reference", "r", "", "FASTA or plain text file containing the reference sequence (default reads STDIN)")
	queryFiles = alignCmd.Flags().StringSliceP("query", "q", []string{}, "FASTA or plain text file(s) of query sequences (default reads STDIN)")
	maxRefLength = alignCmd.Flags().Int("maxRefLength", 5000, "maximum reference length to index, indexing is quadratic in memory (0 disables the check)")
	kmerSize = alignCmd.Flags().IntP("kmerSize", "k", 0, "size of k-mer used to estimate query similarity to the reference (0 disables the estimate)")
	sketchSize = alignCmd.Flags().IntP("sketchSize", "s", 128, "size of MinHash sketch used to estimate query similarity")
	saveFile = alignCmd.Flags().StringP("save", "o", "", "file to save the run to, it can be shown again with the report subcommand")
	noColour = alignCmd.Flags().Bool("noColour", false, "if set, the report is written without styling")
	RootCmd.AddCommand(alignCmd)
}

// alignParamCheck checks the user supplied parameters
func alignParamCheck() error {
	if *referenceFile == "" || len(*queryFiles) == 0 {
		if err := misc.CheckSTDIN(); err != nil {
			return err
		}
		log.Info("\tinput: using STDIN")
	}
	if *referenceFile != "" {
		if err := misc.CheckFile(*referenceFile); err != nil {
			return err
		}
		if err := misc.CheckExt(*referenceFile, seqExts); err != nil {
			return err
		}
	}
	for _, file := range *queryFiles {
		if err := misc.CheckFile(file); err != nil {
			return err
		}
		if err := misc.CheckExt(file, seqExts); err != nil {
			return err
		}
	}
	if *maxRefLength < 0 {
		return errors.New("maximum reference length can't be negative")
	}
	if *kmerSize < 0 {
		return errors.New("k-mer size can't be negative")
	}
	if *kmerSize > 0 && *sketchSize < 1 {
		return errors.New("sketch size must be at least 1")
	}
	if *saveFile != "" {
		if err := misc.CheckDir(filepath.Dir(*saveFile)); err != nil {
			return errors.Wrap(err, "can't save run")
		}
	}
	// set number of processors to use
	if *proc <= 0 || *proc > runtime.NumCPU() {
		*proc = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(*proc)
	return nil
}

// loadReference returns the first record of the reference file
func loadReference(file string) (*seqio.Sequence, error) {
	fh, err := misc.OpenFile(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	seqs, err := seqio.ReadSequences(fh)
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, errors.Errorf("no reference sequence found in %v", file)
	}
	if len(seqs) > 1 {
		log.Warnf("\treference file holds %d sequences, only the first is used", len(seqs))
	}
	return seqs[0], nil
}

// readInteractive reads the reference and, if wanted, a query as single lines
// the steps are only prompted for when STDIN is a terminal
func readInteractive(r io.Reader, renderer *report.Renderer, wantQuery bool) (*seqio.Sequence, *seqio.Sequence, error) {
	prompt := misc.IsTerminal()
	steps := 1
	if wantQuery {
		steps = 2
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	readLine := func(step int, title, request, id string) (*seqio.Sequence, error) {
		if prompt {
			renderer.Prompt(step, steps, title, request)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, errors.Errorf("no %v sequence was entered", id)
		}
		seq := &seqio.Sequence{ID: id, Seq: []byte(scanner.Text())}
		return seq, seq.BaseCheck()
	}
	if prompt {
		renderer.Banner()
	}
	reference, err := readLine(1, "Input reference sequence", "Reference:", "reference")
	if err != nil || !wantQuery {
		return reference, nil, err
	}
	query, err := readLine(2, "Input query sequence", "Query:", "query")
	return reference, query, err
}

// runAlign is the main function for the align sub-command
func runAlign() {
	// set up profiling
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}
	// start logging
	if logFH := startLogging(); logFH != nil {
		defer logFH.Close()
	}
	log.Infof("dnatile (version %s)", version.VERSION)
	log.Info("starting the align subcommand")
	log.Info("checking parameters...")
	misc.ErrorCheck(alignParamCheck())
	log.Infof("\tprocessors: %d", *proc)
	log.Infof("\tmaximum reference length: %d", *maxRefLength)
	if *kmerSize > 0 {
		log.Infof("\tk-mer size: %d", *kmerSize)
		log.Infof("\tsketch size: %d", *sketchSize)
	}
	for _, file := range *queryFiles {
		log.Infof("\tquery file: %v", file)
	}

	// collect the runtime info
	info := pipeline.NewInfo(*proc)
	info.Profiling = *profiling
	info.Align = pipeline.AlignCmd{
		ReferenceFile: *referenceFile,
		QueryFiles:    *queryFiles,
		MaxRefLength:  *maxRefLength,
		KmerSize:      *kmerSize,
		SketchSize:    *sketchSize,
		Colour:        !*noColour,
	}
	renderer := report.NewRenderer(os.Stdout, info.Align.Colour)

	// get the reference, and a query if both come from STDIN
	log.Info("loading the reference...")
	var reference, query *seqio.Sequence
	var err error
	if *referenceFile == "" {
		reference, query, err = readInteractive(os.Stdin, renderer, len(*queryFiles) == 0)
		if err != nil {
			renderer.Error(err)
			os.Exit(1)
		}
	} else {
		reference, err = loadReference(*referenceFile)
		misc.ErrorCheck(err)
		misc.ErrorCheck(reference.BaseCheck())
	}
	info.ReferenceID = reference.ID
	info.Reference = reference.Seq
	log.Infof("\treference: %v (%d bp)", reference.ID, len(reference.Seq))

	// create the pipeline
	log.Info("initialising alignment pipeline...")
	alignmentPipeline := pipeline.NewPipeline()

	// initialise processes
	log.Info("\tindexing the reference")
	reader := pipeline.NewSequenceReader(info)
	checker := pipeline.NewSequenceChecker(info)
	tiler, err := pipeline.NewTiler(info)
	misc.ErrorCheck(err)
	log.Infof("\tdistinct substrings indexed: %d", tiler.IndexSize())
	reporter := pipeline.NewReporter(info, os.Stdout)

	// arrange pipeline processes
	log.Info("\tconnecting data streams")
	if query != nil {
		reader.ConnectSequences(query)
	} else {
		reader.Connect(*queryFiles)
	}
	checker.Connect(reader)
	tiler.Connect(checker)
	reporter.Connect(tiler)

	// submit each process to the pipeline and run it
	alignmentPipeline.AddProcesses(reader, checker, tiler, reporter)
	log.Infof("\tnumber of processes added to the alignment pipeline: %d", alignmentPipeline.GetNumProcesses())
	alignmentPipeline.Run()
	if received, rejected := checker.CollectStats(); received == rejected {
		log.Warn("no queries were aligned")
	}

	// save the run
	if *saveFile != "" {
		log.Infof("saving run to %v...", *saveFile)
		misc.ErrorCheck(info.Dump(*saveFile))
	}
	log.Info("finished")
}
