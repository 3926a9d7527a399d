package memory

import "fmt"

// MemoryError reports an I/O failure while allocating, mapping, releasing or
// deleting segments.
//
// The original underlying error can be accessed via errors.Unwrap.
type MemoryError struct {
	Op      string
	Path    string
	Segment int // -1 when the failure is not tied to a segment
	Err     error
}

func (e *MemoryError) Error() string {
	switch {
	case e.Path != "" && e.Segment >= 0:
		return fmt.Sprintf("memory: %s segment %d (%s): %v", e.Op, e.Segment, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("memory: %s %s: %v", e.Op, e.Path, e.Err)
	case e.Segment >= 0:
		return fmt.Sprintf("memory: %s segment %d: %v", e.Op, e.Segment, e.Err)
	default:
		return fmt.Sprintf("memory: %s: %v", e.Op, e.Err)
	}
}

func (e *MemoryError) Unwrap() error { return e.Err }
