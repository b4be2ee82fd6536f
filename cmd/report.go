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
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/will-rowe/dnatile/src/misc"
	"github.com/will-rowe/dnatile/src/pipeline"
	"github.com/will-rowe/dnatile/src/report"
	"github.com/will-rowe/dnatile/src/version"
)

// the command line arguments
var (
	runFile        *string // file containing a saved run
	reportNoColour *bool   // flag to turn off styled output
)

// the report command (used by cobra)
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the results of a saved alignment run",
	Long:  `Show the results of a saved alignment run, the run is saved with align --save`,
	Run: func(cmd *cobra.Command, args []string) {
		runReport()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	runFile = reportCmd.Flags().StringP("input", "i", "", "saved run to report - required")
	reportNoColour = reportCmd.Flags().Bool("noColour", false, "if set, the report is written without styling")
	reportCmd.MarkFlagRequired("input")
	RootCmd.AddCommand(reportCmd)
}

// runReport is the main function for the report sub-command
func runReport() {
	if logFH := startLogging(); logFH != nil {
		defer logFH.Close()
	}
	log.Infof("dnatile (version %s)", version.VERSION)
	log.Info("starting the report subcommand")
	log.Info("checking parameters...")
	misc.ErrorCheck(misc.CheckFile(*runFile))
	info := new(pipeline.Info)
	misc.ErrorCheck(info.Load(*runFile))
	if info.Version != version.VERSION {
		misc.ErrorCheck(errors.Errorf("the run was saved with a different version of dnatile (%v), you are currently using version %v", info.Version, version.VERSION))
	}
	log.Infof("\trun ID: %v", info.RunID)
	log.Infof("\treference: %v (%d bp)", info.ReferenceID, len(info.Reference))
	log.Infof("\tnumber of results: %d", len(info.Results))
	renderer := report.NewRenderer(os.Stdout, !*reportNoColour)
	for _, result := range info.Results {
		renderer.Result(info.Reference, result)
	}
	log.Info("finished")
}
