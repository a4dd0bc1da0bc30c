package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"poetrypass/cmd/poetrypass/ui"
	"poetrypass/internal/config"
	"poetrypass/internal/corpus"
	"poetrypass/internal/logging"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the poetrypass version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "poetrypass %s (%s %s/%s)\n",
				version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func newCorpusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpus",
		Short: "Show statistics for the embedded poetry and word lists",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			styles := ui.NewStyles(out)

			stats := corpus.Default().Stats()
			rows := make([][]string, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, []string{
					s.Kind.String(),
					strconv.Itoa(s.Count),
					strconv.Itoa(s.MinChars),
					strconv.Itoa(s.MaxChars),
					strconv.FormatFloat(s.AvgChars, 'f', 2, 64),
				})
			}
			fmt.Fprint(out, styles.Table([]string{"CORPUS", "ENTRIES", "MIN", "MAX", "AVG"}, rows))
		},
	}
}

// newConfigCmd groups config file helpers. It reads the resolved path from
// the root options.
func newConfigCmd(o *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the poetrypass config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			logging.Get(logging.CategoryConfig).Info("wrote default config to %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), o.configPath)
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}
