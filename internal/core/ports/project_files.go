package ports

/*
ProjectFiles gives actions access to files under the project root. Relative
paths are resolved against that root. Exists is a boolean probe and never fails.
*/
type ProjectFiles interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// Remove deletes path. Removing an absent path is not an error.
	Remove(path string) error
	// Abs returns the absolute form of a project-relative path.
	Abs(path string) string
}
