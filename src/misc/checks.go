package misc

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// CheckSTDIN returns an error if there is nothing piped or typed into STDIN
func CheckSTDIN() error {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return errors.Wrap(err, "error with STDIN")
	}
	if (stat.Mode()&os.ModeNamedPipe) == 0 && (stat.Mode()&os.ModeCharDevice) == 0 {
		return errors.New("no STDIN found")
	}
	return nil
}

// IsTerminal reports whether STDIN is attached to an interactive terminal
func IsTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// CheckFile returns an error if a file does not exist or can't be accessed
func CheckFile(file string) error {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("file does not exist: %v", file)
		}
		return errors.Errorf("can't access file (check permissions): %v", file)
	}
	return nil
}

// CheckDir returns an error if a directory does not exist or can't be accessed
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("directory does not exist: %v", dir)
		}
		return errors.Errorf("can't access directory (check permissions): %v", dir)
	}
	if !info.IsDir() {
		return errors.Errorf("not a directory: %v", dir)
	}
	return nil
}

// CheckExt returns an error if a file does not have one of the accepted extensions
// a trailing compression extension is ignored, so "ref.fa.gz" passes for "fa"
func CheckExt(file string, exts []string) error {
	name := strings.ToLower(filepath.Base(file))
	if _, ok := decompressors[filepath.Ext(name)]; ok {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, accepted := range exts {
		if ext == accepted {
			return nil
		}
	}
	return errors.Errorf("file does not have an accepted extension (%v): %v", strings.Join(exts, ", "), file)
}
