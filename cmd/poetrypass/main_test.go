package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"poetrypass/internal/config"
	"poetrypass/internal/logging"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultLine = regexp.MustCompile(`^[a-z]+-[a-z]+-\d{4}$`)

// execute runs a fresh command tree with an isolated HOME and environment.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeWithEnv(t, nil, args...)
}

// executeWithEnv is execute with POETRYPASS_* variables set for the run.
func executeWithEnv(t *testing.T, env map[string]string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"POETRYPASS_SOURCE",
		"POETRYPASS_MODE",
		"POETRYPASS_NO_NUMBER",
		"POETRYPASS_RANDOM_CAPS",
		"POETRYPASS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
	t.Cleanup(logging.Reset)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// =============================================================================
// GENERATION
// =============================================================================

func TestDefaultRun(t *testing.T) {
	out, stderr, err := execute(t)
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 1)
	assert.Regexp(t, defaultLine, got[0])
	assert.Empty(t, stderr, "nothing but passphrases by default")
}

func TestCount(t *testing.T) {
	out, _, err := execute(t, "-n", "5")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 5)
	for _, l := range got {
		assert.Regexp(t, defaultLine, l)
	}

	out, _, err = execute(t, "--count", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, _, err = execute(t, "-n", "-2")
	assert.Error(t, err)
}

func TestSeedIsReproducible(t *testing.T) {
	a, _, err := execute(t, "--seed", "7", "-n", "4", "-r")
	require.NoError(t, err)
	b, _, err := execute(t, "--seed", "7", "-n", "4", "-r")
	require.NoError(t, err)
	if diff := cmp.Diff(lines(a), lines(b)); diff != "" {
		t.Fatalf("seeded runs differ (-a +b):\n%s", diff)
	}

	c, _, err := execute(t, "--seed", "7", "-n", "12", "-j", "3")
	require.NoError(t, err)
	d, _, err := execute(t, "--seed", "7", "-n", "12", "-j", "3")
	require.NoError(t, err)
	assert.Len(t, lines(c), 12)
	assert.Equal(t, c, d)
}

func TestTransformFlags(t *testing.T) {
	out, _, err := execute(t, "-c")
	require.NoError(t, err)
	assert.True(t, hasHan(out), "chinese output: %q", out)

	out, _, err = execute(t, "-i", "--no-number", "--separator", "_")
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z?]+_[a-z?]+$`, strings.TrimSpace(out))

	for _, flag := range []string{"-d", "--dual-reverse"} {
		out, _, err = execute(t, flag, "--word-word")
		require.NoError(t, err)
		assert.Regexp(t, defaultLine, strings.TrimSpace(out), flag)
	}
}

// Poetry lines have 5-7 characters and words 2-4, so the rune count of each
// Chinese slot shows which collection it came from.
func TestSourcePolicyFlags(t *testing.T) {
	tests := []struct {
		flag      string
		frontPoem bool
		backPoem  bool
	}{
		{"--poetry", true, true},
		{"--words", false, false},
		{"--word-poem", false, true},
		{"--poem-word", true, false},
		{"--word-word", false, false},
		{"--poem-poem", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			out, _, err := execute(t, tt.flag, "-c", "--no-number", "--separator", "|", "-n", "10")
			require.NoError(t, err)

			got := lines(out)
			require.Len(t, got, 10)
			for _, l := range got {
				slots := strings.Split(l, "|")
				require.Len(t, slots, 2, l)
				assert.Equal(t, tt.frontPoem, utf8.RuneCountInString(slots[0]) >= 5, "front of %q", l)
				assert.Equal(t, tt.backPoem, utf8.RuneCountInString(slots[1]) >= 5, "back of %q", l)
			}
		})
	}
}

func TestRandomCapsFlagOverridesEnvironment(t *testing.T) {
	env := map[string]string{"POETRYPASS_RANDOM_CAPS": "true"}

	out, _, err := executeWithEnv(t, env, "--seed", "3", "-n", "10")
	require.NoError(t, err)
	assert.NotEqual(t, strings.ToLower(out), out, "environment enables capitals")

	out, _, err = executeWithEnv(t, env, "--random-caps=false", "-n", "10")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 10)
	for _, l := range got {
		assert.Regexp(t, defaultLine, l)
	}
}

func TestSourceFlag(t *testing.T) {
	out, _, err := execute(t, "-s", "--poem-poem", "-n", "2")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 5, "two blocks separated by a blank line")
	assert.True(t, strings.HasPrefix(got[0], "Password:"))
	assert.True(t, strings.HasPrefix(got[1], "Source:"))
	assert.Empty(t, got[2])
	assert.True(t, hasHan(got[1]))
	assert.False(t, hasHan(got[0]))
}

func TestMutuallyExclusiveFlags(t *testing.T) {
	_, _, err := execute(t, "-i", "-c")
	assert.Error(t, err)

	_, _, err = execute(t, "--poetry", "--word-poem")
	assert.Error(t, err)
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, _, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestHelpDoesNotGenerate(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--dual-reverse")
	for _, l := range lines(out) {
		assert.NotRegexp(t, defaultLine, l)
	}
}

func TestBadEnvironmentValueIsReported(t *testing.T) {
	env := map[string]string{"POETRYPASS_NO_NUMBER": "maybe"}

	for _, args := range [][]string{nil, {"-v"}} {
		out, stderr, err := executeWithEnv(t, env, args...)
		require.NoError(t, err)
		assert.Regexp(t, defaultLine, strings.TrimSpace(out), "number kept")
		assert.Contains(t, stderr, `ignoring POETRYPASS_NO_NUMBER="maybe"`, "args %v", args)
		assert.NotContains(t, out, "ignoring")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, stderr, err := execute(t, "-v")
	require.NoError(t, err)
	assert.Len(t, lines(out), 1)
	assert.Contains(t, stderr, "run_id")
	assert.Contains(t, stderr, "DEBUG")
}

// =============================================================================
// CONFIG FILE AND ENVIRONMENT
// =============================================================================

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poetrypass.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestConfigFileDefaults(t *testing.T) {
	path := writeConfig(t, "generator:\n  mode: chinese\n  add_number: false\n  count: 3\n")

	out, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	for _, l := range got {
		assert.True(t, hasHan(l))
		assert.False(t, strings.ContainsAny(l, "0123456789"))
	}

	// Flags win over the file.
	out, _, err = execute(t, "--config", path, "-i", "-n", "1", "--no-number=false")
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z?]+-[a-z?]+-\d{4}$`, strings.TrimSpace(out))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "generator:\n  separator: \"_\"\n")
	t.Setenv("POETRYPASS_SEPARATOR", "+")

	out, _, err := execute(t, "--config", path)
	require.NoError(t, err)
	assert.Regexp(t, `^[a-z]+\+[a-z]+\+\d{4}$`, strings.TrimSpace(out))
}

func TestInvalidConfig(t *testing.T) {
	path := writeConfig(t, "generator:\n  source: novels\n")

	_, _, err := execute(t, "--config", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yaml")

	out, _, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, _, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err, "refuses to overwrite")

	_, _, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)

	out, _, err = execute(t, "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

// =============================================================================
// INFO COMMANDS
// =============================================================================

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "poetrypass dev"))
}

func TestCorpusStats(t *testing.T) {
	out, _, err := execute(t, "corpus")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "ENTRIES")
	assert.True(t, strings.HasPrefix(got[1], "poetry"))
	assert.True(t, strings.HasPrefix(got[2], "words"))
}
