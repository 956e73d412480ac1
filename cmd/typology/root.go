package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	typology "github.com/jamesainslie/go-typology"
	"github.com/jamesainslie/go-typology/internal/coverage"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "typology",
		Short: "Generate language typology training files from WALS tables",
		Long: `typology joins the WALS consonant-vowel ratio, case marking, object-verb,
genitive-noun and adjective-noun tables into one profile per language, drops
languages missing any feature, and writes train, validation and test files
with one fully observed and five single-feature-masked rows per language.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return readConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, loadSettings(v))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./typology.yaml if present)")
	pf.String("tables", "", "directory holding wals-<feature>.csv tables (default: embedded tables)")
	pf.BoolP("verbose", "v", false, "log each pipeline step")

	f := root.Flags()
	f.StringP("output", "o", ".", "output directory")
	f.String("seed", "", "shuffle seed for reproducible splits (default: random)")
	f.String("manifest", "", "also write a JSON run manifest to this path")
	f.String("train-file", typology.DefaultFileNames.Train, "training subset file name")
	f.String("valid-file", typology.DefaultFileNames.Valid, "validation subset file name")
	f.String("test-file", typology.DefaultFileNames.Test, "test subset file name")

	setDefaults(v)
	_ = v.BindPFlag("tables", pf.Lookup("tables"))
	_ = v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = v.BindPFlag("output", f.Lookup("output"))
	_ = v.BindPFlag("seed", f.Lookup("seed"))
	_ = v.BindPFlag("manifest", f.Lookup("manifest"))
	_ = v.BindPFlag("files.train", f.Lookup("train-file"))
	_ = v.BindPFlag("files.valid", f.Lookup("valid-file"))
	_ = v.BindPFlag("files.test", f.Lookup("test-file"))

	root.AddCommand(newStatsCmd(v), newConfigCmd(v))
	return root
}

func runGenerate(cmd *cobra.Command, s settings) error {
	logger := s.logger(cmd)
	opts, err := s.options(logger)
	if err != nil {
		return err
	}

	gen, err := typology.New(s.source(), opts...)
	if err != nil {
		return err
	}

	res, err := gen.Write(cmd.Context(), s.Output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Languages: %d  Complete: %d\n", res.Dataset.Languages, len(res.Dataset.Profiles))
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %-6s %-32s %4d profiles %5d rows\n", f.Subset, f.Path, f.Profiles, f.Rows)
	}
	if res.Manifest != "" {
		fmt.Fprintf(out, "Manifest: %s\n", res.Manifest)
	}
	return nil
}

func newStatsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report per-feature coverage of the tables without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := loadSettings(v)
			gen, err := typology.New(s.source(), typology.WithLogger(s.logger(cmd)))
			if err != nil {
				return err
			}
			set, err := gen.Merge(cmd.Context())
			if err != nil {
				return err
			}
			return coverage.Print(cmd.OutOrStdout(), coverage.Compute(set.Drafts()))
		},
	}
}
