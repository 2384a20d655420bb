package schema

import "fmt"

// MalformedSnapshotError reports a document that is not a valid encoded
// tree: invalid JSON, a node missing its required id or kind, a type
// mismatch, or a duplicate id.
type MalformedSnapshotError struct {
	Path   string // location within the document, e.g. "root.children[1]"
	Reason string
}

func (e *MalformedSnapshotError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed snapshot: %s", e.Reason)
	}
	return fmt.Sprintf("malformed snapshot at %s: %s", e.Path, e.Reason)
}

func malformed(path, format string, args ...any) *MalformedSnapshotError {
	return &MalformedSnapshotError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
