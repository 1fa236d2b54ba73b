package domain

// SampleSet is the prompt batch built for a single translate call.
type SampleSet struct {
	Samples     []string
	TotalLemmas int
}

// TotalBytes returns the summed byte length of all samples.
func (s SampleSet) TotalBytes() int {
	n := 0
	for _, sample := range s.Samples {
		n += len(sample)
	}
	return n
}

// RawResponse is one reply from an external service.
// Text is set by phrase translators, Candidates by dictionary lookups.
type RawResponse struct {
	Text       string
	Candidates []string
}

// ParsedResponse holds the terms and definitions recovered from one reply.
type ParsedResponse struct {
	AllTerms       []string
	AllDefinitions []string
}

// TermCount is a ranked candidate with the number of times it was seen.
type TermCount struct {
	Term  string
	Count int
}

// Result is the aggregated outcome of translating one task.
type Result struct {
	Type            ResultType
	Raw             []ParsedResponse
	Terms           []TermCount
	Definitions     []TermCount
	RawTranslations []string
}

// TopTerm returns the highest ranked term, if any.
func (r *Result) TopTerm() (string, bool) {
	if r == nil || len(r.Terms) == 0 {
		return "", false
	}
	return r.Terms[0].Term, true
}
