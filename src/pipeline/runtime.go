package pipeline

import (
	"io/ioutil"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/objconv/msgpack"
	"github.com/will-rowe/dnatile/src/report"
	"github.com/will-rowe/dnatile/src/version"
)

// Info stores the runtime information
type Info struct {
	RunID       string
	Version     string
	NumProc     int
	Profiling   bool
	Align       AlignCmd
	ReferenceID string
	Reference   []byte
	Results     []*report.Result
}

// AlignCmd stores the runtime info for the align command
type AlignCmd struct {
	ReferenceFile string
	QueryFiles    []string
	MaxRefLength  int
	KmerSize      int
	SketchSize    int
	Colour        bool
}

// NewInfo returns runtime info for a new run, stamped with the current version and a run ID
func NewInfo(numProc int) *Info {
	return &Info{
		RunID:   uuid.New().String(),
		Version: version.VERSION,
		NumProc: numProc,
	}
}

// Dump is a method to dump the pipeline info to file
// the reference index is never included, it is rebuilt for every run
func (Info *Info) Dump(path string) error {
	b, err := msgpack.Marshal(Info)
	if err != nil {
		return errors.Wrap(err, "could not encode run info")
	}
	return ioutil.WriteFile(path, b, 0644)
}

// Load is a method to load Info from file
func (Info *Info) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return Info.LoadFromBytes(data)
}

// LoadFromBytes is a method to load Info from bytes
func (Info *Info) LoadFromBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("saved run appears empty")
	}
	if err := msgpack.Unmarshal(data, Info); err != nil {
		return errors.Wrap(err, "could not decode run info")
	}
	return nil
}
