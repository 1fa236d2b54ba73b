package domain

import "time"

// Lemma is one word of a synset. Key is the sense index the lemma was stored under.
type Lemma struct {
	Key  string
	Text string
}

// Task is a WordNet synset queued for translation.
// Words keeps the stored order; translators rely on it for stable samples.
type Task struct {
	ID         string
	POS        PartOfSpeech
	Words      []Lemma
	Definition []string
}

// LemmaTexts returns the lemma strings in stored order.
func (t Task) LemmaTexts() []string {
	out := make([]string, len(t.Words))
	for i, w := range t.Words {
		out[i] = w.Text
	}
	return out
}

// FirstDefinition returns the first gloss and whether the task has one.
func (t Task) FirstDefinition() (string, bool) {
	if len(t.Definition) == 0 {
		return "", false
	}
	return t.Definition[0], true
}

// Validate checks the only invariants a stored task carries.
func (t Task) Validate() error {
	var errs []FieldError
	if t.ID == "" {
		errs = append(errs, FieldError{Field: "id", Message: "required"})
	}
	if len(t.Words) == 0 {
		errs = append(errs, FieldError{Field: "words", Message: "at least one lemma required"})
	}
	if !t.POS.IsValid() {
		errs = append(errs, FieldError{Field: "pos", Message: "unknown part of speech " + string(t.POS)})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// TaskStatus is the per-method state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusTranslated TaskStatus = "translated"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskFailure records the last error a method hit on a task.
type TaskFailure struct {
	MethodID string
	Error    string
	FailedAt time.Time
}

// TaskStats holds aggregate counts for one method id.
type TaskStats struct {
	Total      int
	Translated int
	Failed     int
	Pending    int
}
