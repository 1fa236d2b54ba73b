package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// taskDocument is the stored shape of a task. Words is an ordered
// sub-document keyed by sense index: {"1": "dog", "2": "hound"}.
type taskDocument struct {
	ID         string                     `bson:"_id"`
	POS        string                     `bson:"pos"`
	Words      bson.D                     `bson:"words"`
	Definition []string                   `bson:"definition"`
	Results    map[string]resultDocument  `bson:"results,omitempty"`
	Failures   map[string]failureDocument `bson:"failures,omitempty"`
}

type resultDocument struct {
	Type            string           `bson:"type"`
	Raw             []parsedDocument `bson:"raw"`
	Terms           []countDocument  `bson:"terms"`
	Definitions     []countDocument  `bson:"definitions"`
	RawTranslations []string         `bson:"raw_translations,omitempty"`
	TranslatedAt    time.Time        `bson:"translated_at"`
}

type parsedDocument struct {
	AllTerms       []string `bson:"all_terms"`
	AllDefinitions []string `bson:"all_definitions"`
}

type countDocument struct {
	Term  string `bson:"term"`
	Count int    `bson:"count"`
}

type failureDocument struct {
	Error    string    `bson:"error"`
	FailedAt time.Time `bson:"failed_at"`
}

func wordsToDoc(words []domain.Lemma) bson.D {
	d := make(bson.D, 0, len(words))
	for _, w := range words {
		d = append(d, bson.E{Key: w.Key, Value: w.Text})
	}
	return d
}

func (d taskDocument) toDomain() (domain.Task, error) {
	task := domain.Task{
		ID:         d.ID,
		POS:        domain.PartOfSpeech(d.POS),
		Words:      make([]domain.Lemma, 0, len(d.Words)),
		Definition: d.Definition,
	}
	for _, e := range d.Words {
		text, ok := e.Value.(string)
		if !ok {
			return domain.Task{}, fmt.Errorf("task %s: word %s is %T, not a string", d.ID, e.Key, e.Value)
		}
		task.Words = append(task.Words, domain.Lemma{Key: e.Key, Text: text})
	}
	return task, nil
}

func resultToDoc(r *domain.Result, now time.Time) resultDocument {
	doc := resultDocument{
		Type:            string(r.Type),
		Raw:             make([]parsedDocument, 0, len(r.Raw)),
		Terms:           countsToDoc(r.Terms),
		Definitions:     countsToDoc(r.Definitions),
		RawTranslations: r.RawTranslations,
		TranslatedAt:    now,
	}
	for _, p := range r.Raw {
		doc.Raw = append(doc.Raw, parsedDocument{AllTerms: p.AllTerms, AllDefinitions: p.AllDefinitions})
	}
	return doc
}

func (d resultDocument) toDomain() *domain.Result {
	r := &domain.Result{
		Type:            domain.ResultType(d.Type),
		Raw:             make([]domain.ParsedResponse, 0, len(d.Raw)),
		Terms:           countsFromDoc(d.Terms),
		Definitions:     countsFromDoc(d.Definitions),
		RawTranslations: d.RawTranslations,
	}
	for _, p := range d.Raw {
		r.Raw = append(r.Raw, domain.ParsedResponse{AllTerms: p.AllTerms, AllDefinitions: p.AllDefinitions})
	}
	return r
}

func countsToDoc(counts []domain.TermCount) []countDocument {
	out := make([]countDocument, len(counts))
	for i, c := range counts {
		out[i] = countDocument{Term: c.Term, Count: c.Count}
	}
	return out
}

func countsFromDoc(docs []countDocument) []domain.TermCount {
	out := make([]domain.TermCount, len(docs))
	for i, d := range docs {
		out[i] = domain.TermCount{Term: d.Term, Count: d.Count}
	}
	return out
}
