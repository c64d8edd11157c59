package domain

// Filter is the shared predicate applied before every aggregation and list
// query. The zero value includes everything.
type Filter struct {
	// ExcludeDuplicates drops records whose client-reported duplicate flag is
	// set. Records missing the flag count as non-duplicate.
	ExcludeDuplicates bool
}

// NewFilter builds the predicate from the request's includeDuplicates flag.
func NewFilter(includeDuplicates bool) Filter {
	return Filter{ExcludeDuplicates: !includeDuplicates}
}

// Keep reports whether a submission passes the predicate. This is the
// in-memory equivalent of the store-side match stage and is what test doubles
// use.
func (f Filter) Keep(s *Submission) bool {
	if f.ExcludeDuplicates && s.IsDuplicate {
		return false
	}
	return true
}
