// Package transform converts Chinese fragments into the textual form used in
// a passphrase: full Pinyin, Pinyin initials, or the original characters.
package transform

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"poetrypass/internal/logging"

	"github.com/mozillazg/go-pinyin"
)

// ErrUnknownMode is returned by ParseMode and ParseStrategy.
var ErrUnknownMode = errors.New("unknown transform mode")

// placeholder stands in for a character whose reading is known but empty.
const placeholder = '?'

// Mode selects how a single fragment is rendered.
type Mode int

const (
	// PinyinFull renders every character as its tone-free reading.
	PinyinFull Mode = iota
	// PinyinInit renders every character as the first letter of its reading.
	PinyinInit
	// Chinese leaves the fragment untouched.
	Chinese
)

func (m Mode) String() string {
	switch m {
	case PinyinFull:
		return "full"
	case PinyinInit:
		return "initials"
	case Chinese:
		return "chinese"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name (case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full", "pinyin", "pinyin-full":
		return PinyinFull, nil
	case "initials", "init", "pinyin-init":
		return PinyinInit, nil
	case "chinese", "zh", "hanzi":
		return Chinese, nil
	default:
		return PinyinFull, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// pinyinArgs is read-only after init; go-pinyin copies Args by value.
var pinyinArgs = pinyin.NewArgs()

// lookup returns the dictionary readings of r, empty when r has none.
var lookup = func(r rune) []string {
	return pinyin.SinglePinyin(r, pinyinArgs)
}

// readings returns the tone-free reading of every character that has one.
// Characters without a dictionary entry are skipped. ü is spelled v, the
// usual keyboard convention, so the output is plain ASCII.
func readings(text string) []string {
	out := make([]string, 0, len(text)/3)
	for _, r := range text {
		pys := lookup(r)
		if len(pys) == 0 {
			logging.Get(logging.CategoryTransform).Debug("no reading for %q in %q, dropped", r, text)
			continue
		}
		out = append(out, strings.ReplaceAll(pys[0], "ü", "v"))
	}
	return out
}

// Transform renders text in the given mode. It never fails: characters with
// no reading are dropped and an empty reading becomes '?'.
func Transform(text string, mode Mode) string {
	switch mode {
	case Chinese:
		return text
	case PinyinFull:
		return strings.Join(readings(text), "")
	case PinyinInit:
		var sb strings.Builder
		for _, py := range readings(text) {
			if py == "" {
				sb.WriteRune(placeholder)
				continue
			}
			first, _ := utf8.DecodeRuneInString(py)
			sb.WriteRune(first)
		}
		return sb.String()
	default:
		panic(fmt.Sprintf("transform: unknown mode %d", int(mode)))
	}
}
