package domain

import "time"

// SourceResult is what one rate source produced during a refresh.
type SourceResult struct {
	Source  string
	Fetched int
	Err     error
}

// RefreshReport summarises one refresh cycle. Saved is the number of rates
// written to the snapshot.
type RefreshReport struct {
	Results     []SourceResult
	Saved       int
	RefreshedAt time.Time
}

// Failed returns the sources that errored.
func (r *RefreshReport) Failed() []SourceResult {
	var out []SourceResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
