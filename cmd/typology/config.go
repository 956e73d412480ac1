package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	typology "github.com/jamesainslie/go-typology"
	"github.com/jamesainslie/go-typology/wals"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Output   string `yaml:"output"`
	Tables   string `yaml:"tables,omitempty"`
	Seed     string `yaml:"seed,omitempty"`
	Manifest string `yaml:"manifest,omitempty"`
	Verbose  bool   `yaml:"verbose"`
	Files    struct {
		Train string `yaml:"train"`
		Valid string `yaml:"valid"`
		Test  string `yaml:"test"`
	} `yaml:"files"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", ".")
	v.SetDefault("tables", "")
	v.SetDefault("seed", "")
	v.SetDefault("manifest", "")
	v.SetDefault("verbose", false)
	v.SetDefault("files.train", typology.DefaultFileNames.Train)
	v.SetDefault("files.valid", typology.DefaultFileNames.Valid)
	v.SetDefault("files.test", typology.DefaultFileNames.Test)
}

// readConfig loads an explicit config file, or typology.yaml from the
// working directory when one exists, and enables TYPOLOGY_* overrides.
func readConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("TYPOLOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName("typology")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func loadSettings(v *viper.Viper) settings {
	var s settings
	s.Output = v.GetString("output")
	s.Tables = v.GetString("tables")
	s.Seed = v.GetString("seed")
	s.Manifest = v.GetString("manifest")
	s.Verbose = v.GetBool("verbose")
	s.Files.Train = v.GetString("files.train")
	s.Files.Valid = v.GetString("files.valid")
	s.Files.Test = v.GetString("files.test")
	return s
}

func (s settings) source() typology.Source {
	if s.Tables != "" {
		return wals.Dir(s.Tables)
	}
	return wals.Embedded()
}

func (s settings) options(logger *slog.Logger) ([]typology.Option, error) {
	opts := []typology.Option{
		typology.WithLogger(logger),
		typology.WithFileNames(typology.FileNames{
			Train: s.Files.Train,
			Valid: s.Files.Valid,
			Test:  s.Files.Test,
		}),
	}
	if s.Seed != "" {
		seed, err := strconv.ParseUint(s.Seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", s.Seed, err)
		}
		opts = append(opts, typology.WithSeed(seed))
	}
	if s.Manifest != "" {
		opts = append(opts, typology.WithManifest(s.Manifest))
	}
	return opts, nil
}

func (s settings) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if s.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(loadSettings(v))
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
