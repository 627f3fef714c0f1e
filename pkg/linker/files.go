package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LowLevelTeam/libcoil-dev-sub001/pkg/coil"
)

// findInput opens path as given, then tries each search directory.
func findInput(path string, searchDirs []string) ([]byte, string, error) {
	contents, err := os.ReadFile(path)
	if err == nil {
		return contents, path, nil
	}
	for _, dir := range searchDirs {
		full := filepath.Join(dir, path)
		if contents, err := os.ReadFile(full); err == nil {
			return contents, full, nil
		}
	}
	return nil, "", fmt.Errorf("input not found: %s", path)
}

// LinkFiles loads each path as a COIL object, links them with the given
// options, and saves the result to outputPath.
func LinkFiles(paths []string, outputPath string, opts Options) (*LinkResult, error) {
	var objs []*coil.ObjectFile
	for _, path := range paths {
		contents, full, err := findInput(path, opts.SearchDirs)
		if err != nil {
			return nil, err
		}
		if !coil.DetectObject(contents) {
			return nil, fmt.Errorf("%s: not a COIL object", full)
		}
		obj, err := coil.ParseObject(contents)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", full, err)
		}
		objs = append(objs, obj)
	}

	res, err := NewLinker(opts).Link(objs...)
	if err != nil {
		return nil, err
	}
	if err := res.Output.SaveToFile(outputPath); err != nil {
		return nil, err
	}
	return res, nil
}

// MergeObjectFiles combines objects without resolving them into an
// executable: symbols may stay undefined and relocations are kept.
func MergeObjectFiles(paths []string, outputPath string) (*LinkResult, error) {
	return LinkFiles(paths, outputPath, MergeOptions())
}
