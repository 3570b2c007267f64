package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ FileReader = (*FSReader)(nil)

// FSReader reads files from the local filesystem, confined to rootPath.
type FSReader struct {
	rootPath string
}

func NewFSReader(rootPath string) *FSReader {
	return &FSReader{rootPath: filepath.Clean(rootPath)}
}

func (r *FSReader) Root() string { return r.rootPath }

func (r *FSReader) ReadFile(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("path %q must be relative to the project root", relPath)
	}
	absPath := filepath.Clean(filepath.Join(r.rootPath, relPath))

	// path traversal
	rel, err := filepath.Rel(r.rootPath, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside project root", relPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
