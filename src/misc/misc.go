// Package misc contains helper functions shared by the dnatile commands
package misc

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrorCheck logs a fatal message if an error is received
func ErrorCheck(msg error) {
	if msg != nil {
		log.Fatal("encountered error", "err", msg)
	}
}

// StartLogging opens a log file for appending, creating it if needed
func StartLogging(logFile string) *os.File {
	logFH, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Fatal("could not open log file", "file", logFile, "err", err)
	}
	return logFH
}

// CheckRequiredFlags returns an error if a flag marked as required by cobra has not been set
func CheckRequiredFlags(flags *pflag.FlagSet) error {
	flagName := ""
	flags.VisitAll(func(flag *pflag.Flag) {
		requiredAnnotation := flag.Annotations[cobra.BashCompOneRequiredFlag]
		if len(requiredAnnotation) == 0 {
			return
		}
		if requiredAnnotation[0] == "true" && !flag.Changed {
			flagName = flag.Name
		}
	})
	if flagName != "" {
		return errors.Errorf("required flag `%v` has not been set", flagName)
	}
	return nil
}
