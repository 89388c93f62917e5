package model

// FixStatus is the outcome of fixing one source file.
type FixStatus int

const (
	// StatusUnchanged means no fixer changed the file.
	StatusUnchanged FixStatus = iota
	// StatusFixed means at least one fixer changed the file.
	StatusFixed
	// StatusCached means the file was skipped because the cache says it is clean.
	StatusCached
	// StatusError means the file could not be read, tokenized or written.
	StatusError
)

func (s FixStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusFixed:
		return "fixed"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FixResult records what happened to one source file. Fields are exported
// so results can be spilled to disk with encoding/gob.
type FixResult struct {
	Path    Path
	Hash    string
	Status  FixStatus
	Applied []string // names of the fixers that changed the file, in run order
	Diff    string   // unified diff, filled when changes were detected
	Err     string
}

// Changed reports whether the file was (or would be) modified.
func (r FixResult) Changed() bool {
	return r.Status == StatusFixed
}
