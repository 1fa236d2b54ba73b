// Package wordnet parses Open English WordNet GWN-LMF JSON files into synset tasks.
// Pure function: file path in, domain structs out. No database dependencies.
package wordnet

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/heartmarshall/wordnet-translator/internal/domain"
)

// Filter narrows which synsets become tasks. The zero value keeps all.
type Filter struct {
	// POS keeps only synsets with one of these parts of speech.
	POS []domain.PartOfSpeech
}

func (f Filter) keep(pos domain.PartOfSpeech) bool {
	return len(f.POS) == 0 || slices.Contains(f.POS, pos)
}

// ParseResult holds the tasks built from the file.
type ParseResult struct {
	Tasks []domain.Task
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalSynsets    int
	TotalEntries    int
	Tasks           int
	NoLemmas        int
	UnknownPOS      int
	FilteredByPOS   int
	DuplicateLemmas int
}

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID     string `json:"@id"`
	Synset string `json:"synset"`
}

type gwnSynset struct {
	ID           string          `json:"@id"`
	PartOfSpeech string          `json:"partOfSpeech"`
	Definition   []gwnDefinition `json:"definition"`
}

type gwnDefinition struct {
	Gloss string `json:"gloss"`
}

// ParseSynsets reads a GWN-LMF JSON file and builds one task per synset.
// Lemmas are collected from the entries whose senses point at the synset,
// in file order, and keyed "1", "2", ... Synsets without lemmas or with an
// unknown part of speech are skipped and counted.
func ParseSynsets(filePath string, filter Filter) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var doc gwnDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return ParseResult{}, fmt.Errorf("decode JSON: %w", err)
	}

	var result ParseResult

	for _, lex := range doc.Graph {
		result.Stats.TotalEntries += len(lex.Entries)
		result.Stats.TotalSynsets += len(lex.Synsets)

		// synset id → lemmas, deduplicated per synset.
		lemmas := make(map[string][]string)
		seen := make(map[string]map[string]bool)
		for _, entry := range lex.Entries {
			word := domain.NormalizeLemma(entry.Lemma.WrittenForm)
			if word == "" {
				continue
			}
			for _, sense := range entry.Sense {
				if seen[sense.Synset] == nil {
					seen[sense.Synset] = make(map[string]bool)
				}
				if seen[sense.Synset][domain.NormalizeText(word)] {
					result.Stats.DuplicateLemmas++
					continue
				}
				seen[sense.Synset][domain.NormalizeText(word)] = true
				lemmas[sense.Synset] = append(lemmas[sense.Synset], word)
			}
		}

		for _, synset := range lex.Synsets {
			pos := domain.PartOfSpeech(synset.PartOfSpeech)
			if !pos.IsValid() {
				result.Stats.UnknownPOS++
				continue
			}
			if !filter.keep(pos) {
				result.Stats.FilteredByPOS++
				continue
			}
			words := lemmas[synset.ID]
			if len(words) == 0 {
				result.Stats.NoLemmas++
				continue
			}

			task := domain.Task{
				ID:         synset.ID,
				POS:        pos,
				Words:      make([]domain.Lemma, len(words)),
				Definition: make([]string, 0, len(synset.Definition)),
			}
			for i, w := range words {
				task.Words[i] = domain.Lemma{Key: strconv.Itoa(i + 1), Text: w}
			}
			for _, d := range synset.Definition {
				if d.Gloss != "" {
					task.Definition = append(task.Definition, d.Gloss)
				}
			}
			result.Tasks = append(result.Tasks, task)
		}
	}

	result.Stats.Tasks = len(result.Tasks)
	return result, nil
}
