package generator

import (
	"fmt"

	"poetrypass/internal/provider"
	"poetrypass/internal/transform"
)

// DefaultSeparator joins fragments and the numeric suffix.
const DefaultSeparator = "-"

// Config describes one kind of passphrase. It is a value: every builder
// method returns a modified copy and leaves the receiver untouched, so a
// Config can be shared freely.
type Config struct {
	source     provider.Source
	strategy   transform.Strategy
	separator  string
	addNumber  bool
	randomCaps bool
}

// DefaultConfig is Mixed sourcing, full Pinyin, "-" separator, numeric
// suffix on and capitalization off.
func DefaultConfig() Config {
	return Config{
		source:    provider.Mixed,
		strategy:  transform.Default(),
		separator: DefaultSeparator,
		addNumber: true,
	}
}

func (c Config) Source() provider.Source { return c.source }
func (c Config) Separator() string { return c.separator }
func (c Config) AddsNumber() bool { return c.addNumber }
func (c Config) RandomizesCaps() bool { return c.randomCaps }

// Strategy returns the transform strategy, never nil.
func (c Config) Strategy() transform.Strategy {
	if c.strategy == nil {
		return transform.Default()
	}
	return c.strategy
}

// String is a compact description used in logs.
func (c Config) String() string {
	return fmt.Sprintf("source=%s mode=%s sep=%q number=%v caps=%v",
		c.source, c.Strategy(), c.separator, c.addNumber, c.randomCaps)
}

// WithStrategy sets the transform strategy.
func (c Config) WithStrategy(s transform.Strategy) Config {
	c.strategy = s
	return c
}

// Initials renders every fragment as Pinyin initials.
func (c Config) Initials() Config {
	return c.WithStrategy(transform.Single{Mode: transform.PinyinInit})
}

// FullPinyin renders every fragment as full Pinyin.
func (c Config) FullPinyin() Config {
	return c.WithStrategy(transform.Single{Mode: transform.PinyinFull})
}

// Chinese keeps the original characters.
func (c Config) Chinese() Config {
	return c.WithStrategy(transform.Single{Mode: transform.Chinese})
}

// DualMode uses front for the first fragment and back for the second.
func (c Config) DualMode(front, back transform.Mode) Config {
	return c.WithStrategy(transform.Dual{Front: front, Back: back})
}

// FrontFullBackInit is DualMode(PinyinFull, PinyinInit), e.g. "huaduo-hlzdc".
func (c Config) FrontFullBackInit() Config {
	return c.DualMode(transform.PinyinFull, transform.PinyinInit)
}

// FrontInitBackFull is DualMode(PinyinInit, PinyinFull), e.g. "hd-huaduolizidanci".
func (c Config) FrontInitBackFull() Config {
	return c.DualMode(transform.PinyinInit, transform.PinyinFull)
}

// WithSource sets the sourcing policy.
func (c Config) WithSource(s provider.Source) Config {
	c.source = s
	return c
}

func (c Config) PoetryOnly() Config { return c.WithSource(provider.Poetry) }
func (c Config) WordsOnly() Config { return c.WithSource(provider.Words) }
func (c Config) WordsPoetry() Config { return c.WithSource(provider.WordsPoetry) }
func (c Config) PoetryWords() Config { return c.WithSource(provider.PoetryWords) }
func (c Config) WordsWords() Config { return c.WithSource(provider.WordsWords) }
func (c Config) PoetryPoetry() Config { return c.WithSource(provider.PoetryPoetry) }

// WithSeparator sets the separator. Any string is accepted, including "".
func (c Config) WithSeparator(sep string) Config {
	c.separator = sep
	return c
}

// NoNumber drops the numeric suffix.
func (c Config) NoNumber() Config {
	c.addNumber = false
	return c
}

// WithNumber restores the numeric suffix.
func (c Config) WithNumber() Config {
	c.addNumber = true
	return c
}

// RandomCapitalize uppercases one to three random letters of the result.
func (c Config) RandomCapitalize() Config {
	c.randomCaps = true
	return c
}

// NoRandomCapitalize keeps the result in its transformed case.
func (c Config) NoRandomCapitalize() Config {
	c.randomCaps = false
	return c
}
