// Package version holds the dnatile release string
package version

// VERSION is the current release, it is recorded in saved runs so that they can be checked on load
const VERSION = "0.1.0"
