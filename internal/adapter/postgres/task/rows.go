package task

import (
	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// lemmaJSON is one element of synset_tasks.words. The array keeps lemma order.
type lemmaJSON struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// resultJSON is the translation_results.result payload.
type resultJSON struct {
	Type            string       `json:"type"`
	Raw             []parsedJSON `json:"raw"`
	Terms           []countJSON  `json:"terms"`
	Definitions     []countJSON  `json:"definitions"`
	RawTranslations []string     `json:"raw_translations,omitempty"`
}

type parsedJSON struct {
	AllTerms       []string `json:"all_terms"`
	AllDefinitions []string `json:"all_definitions"`
}

type countJSON struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

func lemmasToJSON(words []domain.Lemma) []lemmaJSON {
	out := make([]lemmaJSON, len(words))
	for i, w := range words {
		out[i] = lemmaJSON{Key: w.Key, Text: w.Text}
	}
	return out
}

func lemmasFromJSON(rows []lemmaJSON) []domain.Lemma {
	out := make([]domain.Lemma, len(rows))
	for i, r := range rows {
		out[i] = domain.Lemma{Key: r.Key, Text: r.Text}
	}
	return out
}

func resultToJSON(r *domain.Result) resultJSON {
	out := resultJSON{
		Type:            string(r.Type),
		Raw:             make([]parsedJSON, len(r.Raw)),
		Terms:           make([]countJSON, len(r.Terms)),
		Definitions:     make([]countJSON, len(r.Definitions)),
		RawTranslations: r.RawTranslations,
	}
	for i, p := range r.Raw {
		out.Raw[i] = parsedJSON{AllTerms: p.AllTerms, AllDefinitions: p.AllDefinitions}
	}
	for i, c := range r.Terms {
		out.Terms[i] = countJSON{Term: c.Term, Count: c.Count}
	}
	for i, c := range r.Definitions {
		out.Definitions[i] = countJSON{Term: c.Term, Count: c.Count}
	}
	return out
}

func (j resultJSON) toDomain() *domain.Result {
	r := &domain.Result{
		Type:            domain.ResultType(j.Type),
		Raw:             make([]domain.ParsedResponse, len(j.Raw)),
		Terms:           make([]domain.TermCount, len(j.Terms)),
		Definitions:     make([]domain.TermCount, len(j.Definitions)),
		RawTranslations: j.RawTranslations,
	}
	for i, p := range j.Raw {
		r.Raw[i] = domain.ParsedResponse{AllTerms: p.AllTerms, AllDefinitions: p.AllDefinitions}
	}
	for i, c := range j.Terms {
		r.Terms[i] = domain.TermCount{Term: c.Term, Count: c.Count}
	}
	for i, c := range j.Definitions {
		r.Definitions[i] = domain.TermCount{Term: c.Term, Count: c.Count}
	}
	return r
}
