package models

// VocabEntry is a single vocabulary word with optional part-of-speech
// metadata carried over from the word source.
type VocabEntry struct {
	Word string `json:"word"`
	POS  string `json:"pos,omitempty"`
}

// Vocabulary is an ordered, deduplicated word list. Entry order is the
// row order of the embedding matrix and must be stable across cache
// load/rebuild cycles.
type Vocabulary struct {
	Entries []VocabEntry `json:"entries"`
}

func (v *Vocabulary) Len() int {
	return len(v.Entries)
}

// Words returns the vocabulary words in entry order.
func (v *Vocabulary) Words() []string {
	words := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		words[i] = e.Word
	}
	return words
}

// POSFor returns the part-of-speech tag for a word, if the source
// provided one.
func (v *Vocabulary) POSFor(word string) string {
	for _, e := range v.Entries {
		if e.Word == word {
			return e.POS
		}
	}
	return ""
}
