package model

// FixSummary aggregates the results of one fix run.
type FixSummary struct {
	Scanned   int
	Fixed     int
	Unchanged int
	Cached    int
	Errored   int
	DryRun    bool
}

// Add counts one result.
func (s *FixSummary) Add(result FixResult) {
	s.Scanned++

	switch result.Status {
	case StatusFixed:
		s.Fixed++
	case StatusUnchanged:
		s.Unchanged++
	case StatusCached:
		s.Cached++
	case StatusError:
		s.Errored++
	}
}

// HasChanges reports whether any file was (or would be) changed.
func (s FixSummary) HasChanges() bool {
	return s.Fixed > 0
}

// HasErrors reports whether any file failed.
func (s FixSummary) HasErrors() bool {
	return s.Errored > 0
}
