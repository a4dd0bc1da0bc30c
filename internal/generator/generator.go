// Package generator composes passphrases: it draws two fragments, renders
// them with the configured transform strategy, joins them and optionally
// adds a numeric suffix and random capitals.
package generator

import (
	"context"
	"math"
	"runtime"
	"strconv"
	"strings"

	"poetrypass/internal/corpus"
	"poetrypass/internal/logging"
	"poetrypass/internal/provider"
	"poetrypass/internal/random"
	"poetrypass/internal/transform"

	"golang.org/x/sync/errgroup"
)

// Numeric suffix range, [numberMin, numberMax).
const (
	numberMin = 1000
	numberMax = 10000
)

// maxCapitals bounds how many letters RandomCapitalize uppercases.
const maxCapitals = 3

// Generator produces passphrases for one Config. It is safe for concurrent
// use when its random source is (the default one is).
type Generator struct {
	cfg    Config
	corpus *corpus.Corpus
	rng    random.Source
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRandom replaces the random source. The caller is responsible for its
// goroutine safety if the Generator is shared.
func WithRandom(src random.Source) Option {
	return func(g *Generator) {
		g.rng = src
	}
}

// WithCorpus replaces the embedded corpus.
func WithCorpus(c *corpus.Corpus) Option {
	return func(g *Generator) {
		g.corpus = c
	}
}

// New creates a Generator. Without options it uses the embedded corpus and
// a crypto-seeded, mutex-guarded random source.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.corpus == nil {
		g.corpus = corpus.Default()
	}
	if g.rng == nil {
		g.rng = random.NewLocked(random.New())
	}
	logging.GeneratorDebug("generator ready: %s", cfg)
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns one passphrase.
func (g *Generator) Generate() string {
	password, _ := g.compose(g.rng)
	return password
}

// GenerateWithSource returns a passphrase and the untransformed fragments
// it was built from, joined by the same separator. The source carries no
// numeric suffix and no capitalization.
func (g *Generator) GenerateWithSource() (password, source string) {
	return g.compose(g.rng)
}

// GenerateMultiple returns count independent passphrases. Duplicates are
// possible. A count of zero or less yields an empty slice.
func (g *Generator) GenerateMultiple(count int) []string {
	if count <= 0 {
		return []string{}
	}
	timer := logging.StartTimer(logging.CategoryGenerator, "GenerateMultiple")
	defer timer.Stop()

	out := make([]string, count)
	for i := range out {
		out[i] = g.Generate()
	}
	return out
}

// GenerateConcurrent is GenerateMultiple spread over workers goroutines.
// Each worker gets its own source seeded from the generator's source, so
// a seeded Generator still produces a reproducible batch. workers <= 0
// means GOMAXPROCS. Results keep their index order; the context is checked
// between items.
func (g *Generator) GenerateConcurrent(ctx context.Context, count, workers int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, count)

	timer := logging.StartTimer(logging.CategoryGenerator, "GenerateConcurrent")
	defer timer.Stop()
	logging.GeneratorDebug("concurrent batch: count=%d workers=%d", count, workers)

	// Seeds are drawn up front so the assignment does not depend on
	// goroutine scheduling.
	sources := make([]random.Source, workers)
	for w := range sources {
		sources[w] = random.NewSeeded(int64(g.rng.Intn(math.MaxInt32)) + 1)
	}

	out := make([]string, count)
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		rng := sources[w]
		eg.Go(func() error {
			for i := w; i < count; i += workers {
				if err := egCtx.Err(); err != nil {
					return err
				}
				out[i], _ = g.compose(rng)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// compose runs the whole pipeline with the given source.
func (g *Generator) compose(rng random.Source) (password, source string) {
	sep := g.cfg.Separator()

	parts := provider.New(g.cfg.Source(), g.corpus, rng).Fragments()
	source = strings.Join(parts, sep)

	password = strings.Join(transform.Apply(parts, g.cfg.Strategy()), sep)
	if g.cfg.AddsNumber() {
		n := numberMin + rng.Intn(numberMax-numberMin)
		password += sep + strconv.Itoa(n)
	}
	if g.cfg.RandomizesCaps() {
		password = capitalize(password, rng)
	}
	return password, source
}

// capitalize uppercases k distinct ASCII letters of s, k drawn uniformly
// from [1, min(3, letters)]. Positions are drawn at random and redrawn on
// collision; a pathological source that keeps colliding falls back to the
// first unselected letter so the loop always ends.
func capitalize(s string, rng random.Source) string {
	runes := []rune(s)
	letters := make([]int, 0, len(runes))
	for i, r := range runes {
		if isASCIILetter(r) {
			letters = append(letters, i)
		}
	}
	if len(letters) == 0 {
		return s
	}

	k := 1 + rng.Intn(min(maxCapitals, len(letters)))
	selected := make(map[int]bool, k)
	attempts := 0
	for len(selected) < k {
		pos := letters[rng.Intn(len(letters))]
		attempts++
		if selected[pos] {
			if attempts > 16*len(letters) {
				pos = firstUnselected(letters, selected)
			} else {
				continue
			}
		}
		selected[pos] = true
	}

	for pos := range selected {
		if r := runes[pos]; r >= 'a' && r <= 'z' {
			runes[pos] = r - 'a' + 'A'
		}
	}
	return string(runes)
}

func firstUnselected(letters []int, selected map[int]bool) int {
	for _, pos := range letters {
		if !selected[pos] {
			return pos
		}
	}
	return letters[0]
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Generate returns one passphrase with the default configuration.
func Generate() string {
	return New(DefaultConfig()).Generate()
}

// GenerateChinese returns one passphrase that keeps the original
// characters.
func GenerateChinese() string {
	return New(DefaultConfig().Chinese()).Generate()
}
