package workspace

// FileReader defines operations for reading files under a project root.
type FileReader interface {
	ReadFile(path string) (string, error)
}
