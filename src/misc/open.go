package misc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"
)

// decompressors relates a file extension to the archiver format able to decompress it
var decompressors = map[string]func() archiver.Decompressor{
	".gz":  func() archiver.Decompressor { return archiver.NewGz() },
	".bz2": func() archiver.Decompressor { return archiver.NewBz2() },
	".lz4": func() archiver.Decompressor { return archiver.NewLz4() },
	".sz":  func() archiver.Decompressor { return archiver.NewSnappy() },
	".xz":  func() archiver.Decompressor { return archiver.NewXz() },
}

// IsCompressed reports whether a file name carries a supported compression extension
func IsCompressed(file string) bool {
	_, ok := decompressors[strings.ToLower(filepath.Ext(file))]
	return ok
}

// OpenFile opens a file for reading, transparently decompressing it if the extension says so
func OpenFile(file string) (io.ReadCloser, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", file)
	}
	newDecompressor, ok := decompressors[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return fh, nil
	}
	pr, pw := io.Pipe()
	go func() {
		err := newDecompressor().Decompress(fh, pw)
		fh.Close()
		if err != nil {
			err = errors.Wrapf(err, "could not decompress %v", file)
		}
		pw.CloseWithError(err)
	}()
	return pr, nil
}
