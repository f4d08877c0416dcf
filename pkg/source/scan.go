package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/archboard/pkg/errors"
)

// DefaultDir is the directory scanned when the caller does not name one.
const DefaultDir = "src"

// Suffixes lists the recognized source-file suffixes in priority order.
// A file is matched against the first suffix it ends with and never counted twice.
var Suffixes = []string{".ts", ".js"}

// MatchSuffix returns the recognized suffix name ends with, or "" if none.
func MatchSuffix(name string) string {
	for _, s := range Suffixes {
		if strings.HasSuffix(name, s) {
			return s
		}
	}
	return ""
}

// Scan returns the names of regular files in dir that end with a recognized
// suffix, in directory enumeration order. Callers must not rely on that order
// being stable across runs.
//
// Returns an error with code DIRECTORY_NOT_FOUND if dir does not exist,
// cannot be read or is not a directory.
func Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "scan %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeDirectoryNotFound, "scan %s: not a directory", dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "scan %s", dir)
	}
	defer f.Close()

	// Readdir(-1) keeps the platform's enumeration order; os.ReadDir would sort.
	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "scan %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || MatchSuffix(e.Name()) == "" {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

// Load scans dir, reads every recognized file and extracts one record per file.
// Records are returned in scan order.
func Load(dir string) ([]ModuleRecord, error) {
	files, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	records := make([]ModuleRecord, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDirectoryNotFound, err, "read %s", name)
		}
		records = append(records, Extract(name, string(data)))
	}
	return records, nil
}
