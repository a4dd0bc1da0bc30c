// Package provider draws text fragments from the corpus according to a
// sourcing policy.
package provider

import (
	"fmt"

	"poetrypass/internal/corpus"
	"poetrypass/internal/logging"
	"poetrypass/internal/random"
)

// Mixed policy weighting: mixedWordsWeight out of mixedScale draws come
// from Words.
const (
	mixedWordsWeight = 7
	mixedScale       = 10
)

// Provider draws fragments for one policy. It holds no mutable state of its
// own; concurrency safety is that of the random source.
type Provider struct {
	source Source
	corpus *corpus.Corpus
	rng    random.Source
}

// New binds a policy to a corpus and a random source. A nil corpus or
// source is a programming error and panics.
func New(source Source, c *corpus.Corpus, rng random.Source) *Provider {
	if c == nil {
		panic("provider: nil corpus")
	}
	if rng == nil {
		panic("provider: nil random source")
	}
	return &Provider{source: source, corpus: c, rng: rng}
}

// Source returns the policy the provider was built with.
func (p *Provider) Source() Source {
	return p.source
}

func (p *Provider) draw(kind corpus.Kind) string {
	return p.corpus.At(kind, p.rng.Intn(p.corpus.Len(kind)))
}

// DrawOne draws a single fragment. Poetry and Words use their own corpus,
// Mixed picks Words with 70% probability, and two-slot policies behave like
// DrawFront.
func (p *Provider) DrawOne() string {
	switch p.source {
	case Poetry:
		return p.draw(corpus.Poetry)
	case Words:
		return p.draw(corpus.Words)
	case Mixed:
		if p.rng.Intn(mixedScale) < mixedWordsWeight {
			return p.draw(corpus.Words)
		}
		return p.draw(corpus.Poetry)
	}
	front, _, ok := p.source.slots()
	if !ok {
		panic(fmt.Sprintf("provider: unknown source %d", int(p.source)))
	}
	return p.draw(front)
}

// DrawFront draws from the front corpus of a two-slot policy, or falls back
// to DrawOne.
func (p *Provider) DrawFront() string {
	front, _, ok := p.source.slots()
	if !ok {
		return p.DrawOne()
	}
	return p.draw(front)
}

// DrawBack draws from the back corpus of a two-slot policy, or falls back to
// DrawPoetry.
func (p *Provider) DrawBack() string {
	_, back, ok := p.source.slots()
	if !ok {
		return p.DrawPoetry()
	}
	return p.draw(back)
}

// DrawPoetry draws a poetry line regardless of policy.
func (p *Provider) DrawPoetry() string {
	return p.draw(corpus.Poetry)
}

// Fragments resolves the two slots of a passphrase: Mixed pairs DrawOne
// with DrawPoetry, two-slot policies use DrawFront and DrawBack, and the
// single-corpus policies call DrawOne twice.
func (p *Provider) Fragments() []string {
	var parts []string
	switch {
	case p.source == Mixed:
		parts = []string{p.DrawOne(), p.DrawPoetry()}
	case p.source.IsTwoSlot():
		parts = []string{p.DrawFront(), p.DrawBack()}
	default:
		parts = []string{p.DrawOne(), p.DrawOne()}
	}
	logging.Get(logging.CategoryProvider).Debug("policy=%s fragments=%q", p.source, parts)
	return parts
}
