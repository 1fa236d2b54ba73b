package domain

// PartOfSpeech is the WordNet synset category tag.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "n"
	PartOfSpeechVerb         PartOfSpeech = "v"
	PartOfSpeechAdjective    PartOfSpeech = "a"
	PartOfSpeechAdjSatellite PartOfSpeech = "s"
	PartOfSpeechAdverb       PartOfSpeech = "r"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdjSatellite, PartOfSpeechAdverb:
		return true
	}
	return false
}

// ResultType tells which translator family produced a Result.
type ResultType string

const (
	ResultTypeTranslator ResultType = "translator"
	ResultTypeDictionary ResultType = "dictionary"
)

func (t ResultType) String() string { return string(t) }
