package provider

import (
	"errors"
	"fmt"
	"strings"

	"poetrypass/internal/corpus"
)

// ErrUnknownSource is returned by ParseSource for names it does not know.
var ErrUnknownSource = errors.New("unknown source policy")

// Source is the fragment sourcing policy. The zero value is Mixed.
type Source int

const (
	// Mixed draws the first fragment from Words 70% of the time and from
	// Poetry otherwise; the second fragment is always Poetry.
	Mixed Source = iota
	// Poetry draws every fragment from the poetry collection.
	Poetry
	// Words draws every fragment from the words collection.
	Words
	// WordsPoetry: front from Words, back from Poetry.
	WordsPoetry
	// PoetryWords: front from Poetry, back from Words.
	PoetryWords
	// WordsWords: both slots from Words.
	WordsWords
	// PoetryPoetry: both slots from Poetry.
	PoetryPoetry
)

var sourceNames = map[Source]string{
	Mixed:        "mixed",
	Poetry:       "poetry",
	Words:        "words",
	WordsPoetry:  "word-poem",
	PoetryWords:  "poem-word",
	WordsWords:   "word-word",
	PoetryPoetry: "poem-poem",
}

// aliases accepted by ParseSource in addition to the canonical names.
var sourceAliases = map[string]Source{
	"poem":          Poetry,
	"word":          Words,
	"words-poetry":  WordsPoetry,
	"poetry-words":  PoetryWords,
	"words-words":   WordsWords,
	"poetry-poetry": PoetryPoetry,
}

// Sources lists every policy in declaration order.
func Sources() []Source {
	return []Source{Mixed, Poetry, Words, WordsPoetry, PoetryWords, WordsWords, PoetryPoetry}
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource maps a policy name (case-insensitive) to a Source.
func ParseSource(name string) (Source, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for s, n := range sourceNames {
		if n == key {
			return s, nil
		}
	}
	if s, ok := sourceAliases[key]; ok {
		return s, nil
	}
	return Mixed, fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// IsTwoSlot reports whether the policy assigns a corpus per slot.
func (s Source) IsTwoSlot() bool {
	switch s {
	case WordsPoetry, PoetryWords, WordsWords, PoetryPoetry:
		return true
	default:
		return false
	}
}

// slots returns the front and back corpus of a two-slot policy.
func (s Source) slots() (front, back corpus.Kind, ok bool) {
	switch s {
	case WordsPoetry:
		return corpus.Words, corpus.Poetry, true
	case PoetryWords:
		return corpus.Poetry, corpus.Words, true
	case WordsWords:
		return corpus.Words, corpus.Words, true
	case PoetryPoetry:
		return corpus.Poetry, corpus.Poetry, true
	default:
		return 0, 0, false
	}
}
