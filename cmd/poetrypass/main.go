package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"poetrypass/internal/config"
	"poetrypass/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options carries every flag value plus the resolved configuration. Each
// root command gets its own instance.
type options struct {
	// Global flags
	configPath string
	verbose    bool

	// Transform
	initials    bool
	chinese     bool
	dual        bool
	dualReverse bool

	// Source policy
	poetry   bool
	words    bool
	wordPoem bool
	poemWord bool
	wordWord bool
	poemPoem bool

	// Output
	separator  string
	noNumber   bool
	randomCaps bool
	count      int
	showSource bool
	seed       int64
	jobs       int

	// Resolved in PersistentPreRunE
	cfg *config.Config
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "poetrypass",
		Short: "Memorable passphrases from Chinese poetry and words",
		Long: `poetrypass builds passphrases from two random fragments of classical
Chinese poetry or common words, rendered as Pinyin (full or initials) or
kept as Chinese, joined by a separator and followed by a 4-digit number.

Settings are read from ~/.poetrypass.yaml and POETRYPASS_* environment
variables; flags override both.

Examples:
  poetrypass                  # e.g. pengyou-chuangqianmingyueguang-4821
  poetrypass -d               # full Pinyin, then initials: huaduo-hlzdc-1234
  poetrypass --dual-reverse   # initials, then full Pinyin: hd-huaduolizidanci-1234
  poetrypass -n 5 -r          # five passphrases with random capitals
  poetrypass -s --poem-poem   # show the Chinese source as well`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, o)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Config file (default: ~/.poetrypass.yaml)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	f := rootCmd.Flags()
	f.BoolVarP(&o.initials, "initials", "i", false, "Use Pinyin initials")
	f.BoolVarP(&o.chinese, "chinese", "c", false, "Keep the Chinese characters")
	f.BoolVarP(&o.dual, "dual", "d", false, "Full Pinyin first, initials second")
	f.BoolVar(&o.dualReverse, "dual-reverse", false, "Initials first, full Pinyin second")

	f.BoolVar(&o.poetry, "poetry", false, "Draw both fragments from poetry")
	f.BoolVar(&o.words, "words", false, "Draw both fragments from words")
	f.BoolVar(&o.wordPoem, "word-poem", false, "Word first, poetry second")
	f.BoolVar(&o.poemWord, "poem-word", false, "Poetry first, word second")
	f.BoolVar(&o.wordWord, "word-word", false, "Two words")
	f.BoolVar(&o.poemPoem, "poem-poem", false, "Two poetry lines")

	f.StringVar(&o.separator, "separator", "-", "Separator between fragments and number")
	f.BoolVar(&o.noNumber, "no-number", false, "Do not append the 4-digit number")
	f.BoolVarP(&o.randomCaps, "random-caps", "r", false, "Uppercase 1-3 random letters")
	f.IntVarP(&o.count, "count", "n", 1, "Number of passphrases, one per line")
	f.BoolVarP(&o.showSource, "source", "s", false, "Also print the untransformed source")
	f.Int64Var(&o.seed, "seed", 0, "Deterministic seed (0 = random)")
	f.IntVarP(&o.jobs, "jobs", "j", 1, "Parallel workers for large batches (0 = all CPUs)")

	rootCmd.MarkFlagsMutuallyExclusive("initials", "chinese", "dual", "dual-reverse")
	rootCmd.MarkFlagsMutuallyExclusive("poetry", "words", "word-poem", "poem-word", "word-word", "poem-poem")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCorpusCmd(),
		newConfigCmd(o),
	)

	return rootCmd
}

// setup loads the config file, applies the environment and starts logging.
func (o *options) setup(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	o.configPath = path
	runID := uuid.NewString()

	// Default logging first, so problems found while loading are reported.
	if err := o.initLogging(cmd, config.DefaultConfig().Logging, runID); err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	o.cfg = cfg

	if err := o.initLogging(cmd, cfg.Logging, runID); err != nil {
		return err
	}

	logging.BootDebug("config=%s command=%s", path, cmd.CommandPath())
	return nil
}

// initLogging (re)starts logging on the command's stderr.
func (o *options) initLogging(cmd *cobra.Command, lc config.LoggingConfig, runID string) error {
	logOpts := lc.Options(o.verbose)
	logOpts.Output = cmd.ErrOrStderr()
	logOpts.Fields = []zap.Field{zap.String("run_id", runID)}
	if err := logging.Initialize(logOpts); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
