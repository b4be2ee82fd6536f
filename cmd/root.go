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
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/will-rowe/dnatile/src/misc"
	"github.com/will-rowe/dnatile/src/version"
)

// the persistent command line arguments
var (
	logFile   *string // name of the log file
	proc      *int    // number of processors to use
	profiling *bool   // create profile for go pprof
	verbose   *bool   // log debug messages
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dnatile",
	Short: "Tile DNA queries with exact matches from both strands of a reference",
	Long: `dnatile decomposes each query sequence into the fewest exact-match segments
found on the forward or reverse complement strand of a reference sequence.`,
	Version: version.VERSION,
}

// Execute adds all child commands to the root command and sets flags appropriately
// this is called by main.main() and only needs to happen once to the RootCmd
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	logFile = RootCmd.PersistentFlags().StringP("logFile", "l", "", "filename for log file (default logs to STDERR)")
	proc = RootCmd.PersistentFlags().IntP("processors", "p", 1, "number of processors to use")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "create the files needed to profile dnatile using the go tool pprof")
	verbose = RootCmd.PersistentFlags().Bool("verbose", false, "log debug messages")
}

// startLogging directs the logger to the log file if one was given, the caller closes the returned file
func startLogging() *os.File {
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetReportTimestamp(true)
	if *logFile == "" {
		return nil
	}
	logFH := misc.StartLogging(*logFile)
	log.SetOutput(logFH)
	return logFH
}
