package transform

import (
	"errors"
	"testing"
	"unicode"
	"unicode/utf8"

	"poetrypass/internal/corpus"
	"poetrypass/internal/logging"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		text string
		mode Mode
		want string
	}{
		{"full poetry line", "床前明月光", PinyinFull, "chuangqianmingyueguang"},
		{"initials poetry line", "床前明月光", PinyinInit, "cqmyg"},
		{"chinese identity", "床前明月光", Chinese, "床前明月光"},
		{"full word", "朋友", PinyinFull, "pengyou"},
		{"initials word", "朋友", PinyinInit, "py"},
		{"non-han dropped full", "朋友123!", PinyinFull, "pengyou"},
		{"non-han dropped initials", "朋 友,", PinyinInit, "py"},
		{"chinese keeps everything", "朋友123!", Chinese, "朋友123!"},
		{"umlaut spelled v", "绿", PinyinFull, "lv"},
		{"empty input", "", PinyinFull, ""},
		{"only punctuation", "，。！", PinyinInit, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.text, tt.mode))
		})
	}
}

func TestInitialsPlaceholderForEmptyReading(t *testing.T) {
	orig := lookup
	t.Cleanup(func() { lookup = orig })

	lookup = func(r rune) []string {
		switch r {
		case '甲':
			return []string{"jia"}
		case '乙':
			return []string{""}
		default:
			return nil
		}
	}

	assert.Equal(t, "j?", Transform("甲乙丙", PinyinInit))
	assert.Equal(t, "jia", Transform("甲乙丙", PinyinFull))
}

func TestDroppedCharactersAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.InitializeWith(zap.New(core), nil)
	t.Cleanup(logging.Reset)

	assert.Equal(t, "pengyou", Transform("朋A友", PinyinFull))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, string(logging.CategoryTransform), entry.LoggerName)
	assert.Contains(t, entry.Message, `'A'`)
}

func TestTransformUnknownModePanics(t *testing.T) {
	assert.Panics(t, func() { Transform("朋友", Mode(9)) })
}

func TestEmbeddedCorpusTransformsToASCII(t *testing.T) {
	c := corpus.Default()
	for _, kind := range []corpus.Kind{corpus.Poetry, corpus.Words} {
		for _, line := range c.Lines(kind) {
			full := Transform(line, PinyinFull)
			init := Transform(line, PinyinInit)

			require.NotEmpty(t, full, "no reading for %q", line)
			for _, r := range full + init {
				require.True(t, r < unicode.MaxASCII && unicode.IsLower(r), "%q produced %q / %q", line, full, init)
			}
			assert.LessOrEqual(t, len(init), utf8.RuneCountInString(line), "initials of %q", line)
		}
	}
}

func TestApplySingle(t *testing.T) {
	got := Apply([]string{"朋友", "床前明月光"}, Single{Mode: PinyinInit})
	if diff := cmp.Diff([]string{"py", "cqmyg"}, got); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDual(t *testing.T) {
	parts := []string{"朋友", "床前明月光"}

	got := Apply(parts, Dual{Front: PinyinFull, Back: PinyinInit})
	if diff := cmp.Diff([]string{"pengyou", "cqmyg"}, got); diff != "" {
		t.Fatalf("dual mismatch (-want +got):\n%s", diff)
	}

	got = Apply(parts, Dual{Front: PinyinInit, Back: PinyinFull})
	if diff := cmp.Diff([]string{"py", "chuangqianmingyueguang"}, got); diff != "" {
		t.Fatalf("dual-reverse mismatch (-want +got):\n%s", diff)
	}

	// Slots past the second also use Back.
	got = Apply([]string{"朋友", "朋友", "朋友"}, Dual{Front: Chinese, Back: PinyinInit})
	if diff := cmp.Diff([]string{"朋友", "py", "py"}, got); diff != "" {
		t.Fatalf("three-slot mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyNilStrategyDefaultsToFull(t *testing.T) {
	assert.Equal(t, []string{"pengyou"}, Apply([]string{"朋友"}, nil))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	parts := []string{"朋友"}
	_ = Apply(parts, Single{Mode: PinyinFull})
	assert.Equal(t, []string{"朋友"}, parts)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{PinyinFull, PinyinInit, Chinese} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("morse")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"full", Single{Mode: PinyinFull}},
		{"initials", Single{Mode: PinyinInit}},
		{"chinese", Single{Mode: Chinese}},
		{"dual", Dual{Front: PinyinFull, Back: PinyinInit}},
		{"Dual-Reverse", Dual{Front: PinyinInit, Back: PinyinFull}},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseStrategy("triple")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "initials", Single{Mode: PinyinInit}.String())
	assert.Equal(t, "dual", Dual{Front: PinyinFull, Back: PinyinInit}.String())
	assert.Equal(t, "dual-reverse", Dual{Front: PinyinInit, Back: PinyinFull}.String())
	assert.Equal(t, "dual(chinese/full)", Dual{Front: Chinese, Back: PinyinFull}.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
