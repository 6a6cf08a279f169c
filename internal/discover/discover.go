// Package discover finds candidate audio files below a source root.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// Error reports a directory that could not be read during discovery.
type Error struct {
	Root string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" || e.Path == e.Root {
		return fmt.Sprintf("discover %q: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("discover %q: read %q: %v", e.Root, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Files walks root and returns every non-directory entry whose extension is
// in extensions, in lexical walk order. Extension matching is case-sensitive
// and includes the leading dot. Symlinked directories are not followed. Any
// read failure aborts the walk and no partial result is returned.
func Files(root string, extensions map[string]struct{}) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &Error{Root: root, Path: path, Err: err}
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := extensions[filepath.Ext(d.Name())]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
