package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteSource creates root/rel with size bytes of content derived from rel,
// so distinct source files never share content. A size <= 0 writes rel alone.
func WriteSource(t testing.TB, root, rel string, size int) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := []byte(rel)
	for len(data) < size {
		data = append(data, rel...)
	}
	if size > 0 {
		data = data[:size]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteTree creates every relative path in rels under root and returns the
// absolute paths in the same order.
func WriteTree(t testing.TB, root string, rels ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, WriteSource(t, root, rel, 0))
	}
	return paths
}
