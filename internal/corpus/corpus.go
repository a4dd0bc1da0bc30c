// Package corpus holds the two fixed fragment collections passphrases are
// built from. The data files under data/ are baked into the binary with
// go:embed and parsed once on first use; the resulting collections are
// read-only and safe to share between goroutines.
package corpus

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"poetrypass/internal/logging"

	"golang.org/x/text/unicode/norm"
)

//go:embed data/poetry.txt
var embeddedPoetry string

//go:embed data/words.txt
var embeddedWords string

// ErrEmptyCorpus is returned when a collection has no usable lines.
var ErrEmptyCorpus = errors.New("corpus is empty")

// Kind identifies one of the two collections.
type Kind int

const (
	Poetry Kind = iota
	Words
)

func (k Kind) String() string {
	switch k {
	case Poetry:
		return "poetry"
	case Words:
		return "words"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Corpus is an immutable pair of fragment collections.
type Corpus struct {
	poetry []string
	words  []string
}

// New builds a corpus from raw lines. Lines are cleaned the same way as
// the embedded files (see Clean). Both collections must end up non-empty.
func New(poetry, words []string) (*Corpus, error) {
	c := &Corpus{
		poetry: Clean(poetry),
		words:  Clean(words),
	}
	if len(c.poetry) == 0 {
		return nil, fmt.Errorf("%s: %w", Poetry, ErrEmptyCorpus)
	}
	if len(c.words) == 0 {
		return nil, fmt.Errorf("%s: %w", Words, ErrEmptyCorpus)
	}
	return c, nil
}

// Clean trims every line, drops blanks and '#' comments, normalizes to NFC
// and removes duplicates while keeping first-seen order.
func Clean(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = norm.NFC.String(line)
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// Parse reads newline-delimited fragments from r and cleans them.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Clean(lines), nil
}

// loadThreshold is how long parsing the embedded data may take before it
// is reported as slow.
const loadThreshold = 200 * time.Millisecond

var (
	defaultOnce   sync.Once
	defaultCorpus *Corpus
)

// Default returns the embedded corpus, parsing it on first call. The data
// is compiled in, so an empty collection is a build defect and panics.
func Default() *Corpus {
	defaultOnce.Do(func() {
		timer := logging.StartTimer(logging.CategoryCorpus, "load embedded corpus")
		defer timer.StopWithThreshold(loadThreshold)

		c, err := fromText(embeddedPoetry, embeddedWords)
		if err != nil {
			panic(fmt.Sprintf("corpus: embedded data unusable: %v", err))
		}
		logging.CorpusDebug("embedded corpus loaded: %d poetry lines, %d words", len(c.poetry), len(c.words))
		defaultCorpus = c
	})
	return defaultCorpus
}

func fromText(poetry, words string) (*Corpus, error) {
	p, err := Parse(strings.NewReader(poetry))
	if err != nil {
		return nil, err
	}
	w, err := Parse(strings.NewReader(words))
	if err != nil {
		return nil, err
	}
	return New(p, w)
}

func (c *Corpus) lines(kind Kind) []string {
	switch kind {
	case Poetry:
		return c.poetry
	case Words:
		return c.words
	default:
		panic(fmt.Sprintf("corpus: unknown kind %d", int(kind)))
	}
}

// Len returns the number of fragments in a collection.
func (c *Corpus) Len(kind Kind) int {
	return len(c.lines(kind))
}

// At returns the i-th fragment of a collection.
func (c *Corpus) At(kind Kind, i int) string {
	return c.lines(kind)[i]
}

// Lines returns a copy of a collection.
func (c *Corpus) Lines(kind Kind) []string {
	src := c.lines(kind)
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// KindStats summarizes one collection. Lengths count characters, not bytes.
type KindStats struct {
	Kind     Kind
	Count    int
	MinChars int
	MaxChars int
	AvgChars float64
}

// Stats summarizes both collections, poetry first.
func (c *Corpus) Stats() []KindStats {
	return []KindStats{statsFor(Poetry, c.poetry), statsFor(Words, c.words)}
}

func statsFor(kind Kind, lines []string) KindStats {
	s := KindStats{Kind: kind, Count: len(lines)}
	if len(lines) == 0 {
		return s
	}
	total := 0
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		total += n
		if i == 0 || n < s.MinChars {
			s.MinChars = n
		}
		if n > s.MaxChars {
			s.MaxChars = n
		}
	}
	s.AvgChars = float64(total) / float64(len(lines))
	return s
}
