package main

import (
	"fmt"
	"io"

	"poetrypass/cmd/poetrypass/ui"
	"poetrypass/internal/generator"
	"poetrypass/internal/logging"
	"poetrypass/internal/random"

	"github.com/spf13/cobra"
)

// runGenerate prints passphrases to stdout. Nothing else goes to stdout.
func runGenerate(cmd *cobra.Command, o *options) error {
	gc, err := o.generatorConfig(cmd)
	if err != nil {
		return err
	}

	count := o.cfg.Generator.Count
	if cmd.Flags().Changed("count") {
		count = o.count
	}
	if count < 0 {
		return fmt.Errorf("--count must be >= 0, got %d", count)
	}
	jobs := o.cfg.Generator.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = o.jobs
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", jobs)
	}

	var genOpts []generator.Option
	if o.seed != 0 {
		genOpts = append(genOpts, generator.WithRandom(random.NewLocked(random.NewSeeded(o.seed))))
	}
	g := generator.New(gc, genOpts...)

	log := logging.Get(logging.CategoryCLI).WithContext(map[string]interface{}{
		"count":  count,
		"jobs":   jobs,
		"seeded": o.seed != 0,
	})
	log.Debug("generating with %s", gc)

	out := cmd.OutOrStdout()
	if o.showSource {
		return printWithSource(out, g, count)
	}

	var passwords []string
	if jobs == 1 || count <= 1 {
		passwords = g.GenerateMultiple(count)
	} else {
		passwords, err = g.GenerateConcurrent(cmd.Context(), count, jobs)
		if err != nil {
			return fmt.Errorf("generation interrupted: %w", err)
		}
	}
	for _, p := range passwords {
		fmt.Fprintln(out, p)
	}
	return nil
}

func printWithSource(out io.Writer, g *generator.Generator, count int) error {
	styles := ui.NewStyles(out)
	for i := 0; i < count; i++ {
		if i > 0 {
			fmt.Fprintln(out)
		}
		password, source := g.GenerateWithSource()
		fmt.Fprintln(out, styles.Field("Password:", styles.Password, password))
		fmt.Fprintln(out, styles.Field("Source:", styles.Source, source))
	}
	return nil
}

// generatorConfig layers the flags over the file and environment defaults.
func (o *options) generatorConfig(cmd *cobra.Command) (generator.Config, error) {
	gc, err := o.cfg.GeneratorConfig()
	if err != nil {
		return generator.Config{}, err
	}
	flags := cmd.Flags()

	switch {
	case o.initials:
		gc = gc.Initials()
	case o.chinese:
		gc = gc.Chinese()
	case o.dual:
		gc = gc.FrontFullBackInit()
	case o.dualReverse:
		gc = gc.FrontInitBackFull()
	}

	switch {
	case o.poetry:
		gc = gc.PoetryOnly()
	case o.words:
		gc = gc.WordsOnly()
	case o.wordPoem:
		gc = gc.WordsPoetry()
	case o.poemWord:
		gc = gc.PoetryWords()
	case o.wordWord:
		gc = gc.WordsWords()
	case o.poemPoem:
		gc = gc.PoetryPoetry()
	}

	if flags.Changed("separator") {
		gc = gc.WithSeparator(o.separator)
	}
	if flags.Changed("no-number") {
		if o.noNumber {
			gc = gc.NoNumber()
		} else {
			gc = gc.WithNumber()
		}
	}
	if flags.Changed("random-caps") {
		if o.randomCaps {
			gc = gc.RandomCapitalize()
		} else {
			gc = gc.NoRandomCapitalize()
		}
	}
	return gc, nil
}
