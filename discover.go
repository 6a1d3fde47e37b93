package shp2ch

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// FindFiles walks given directory recursively and returns files which base name matches the pattern (e.g. "*nw.geojson").
// Empty pattern matches every file. Result is sorted to keep vertex numbering stable between runs.
func FindFiles(root string, pattern string) ([]string, error) {
	if pattern != "" {
		// Validate pattern once instead of failing on the first file
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, errors.Wrapf(err, "Bad search pattern '%s'", pattern)
		}
	}
	files := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if pattern != "" {
			ok, _ := filepath.Match(pattern, d.Name())
			if !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Can't walk directory '%s'", root)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("No files matching '%s' found in '%s'", pattern, root)
	}
	sort.Strings(files)
	return files, nil
}
