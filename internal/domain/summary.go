package domain

import (
	m "csrules.dev/pkg/csrules/internal/model"
	pkg "csrules.dev/pkg/csrules/pkg"
)

// summarizeResults counts the spilled results and brings cache up to date:
// clean files are recorded, failed or still-dirty files are forgotten. cache
// may be nil when caching is disabled.
func summarizeResults(results pkg.FileSpill[m.FixResult], cache *m.FixCache, dryRun bool) (m.FixSummary, error) {
	summary := m.FixSummary{DryRun: dryRun}

	err := results.Range(func(_ uint64, result m.FixResult) error {
		summary.Add(result)

		if cache == nil {
			return nil
		}

		switch result.Status {
		case m.StatusUnchanged:
			cache.Record(result.Path, result.Hash)
		case m.StatusFixed:
			if dryRun || result.Hash == "" {
				cache.Forget(result.Path)
			} else {
				cache.Record(result.Path, result.Hash)
			}
		case m.StatusError:
			cache.Forget(result.Path)
		case m.StatusCached:
			// Already recorded with the same hash.
		}

		return nil
	})
	if err != nil {
		return m.FixSummary{DryRun: dryRun}, err
	}

	return summary, nil
}
