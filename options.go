package typology

import (
	"log/slog"
	"math/rand/v2"

	"github.com/jamesainslie/go-typology/split"
)

// Option configures a Generator.
type Option func(*config)

// FileNames are the output file names of the three subsets.
type FileNames struct {
	Train string
	Valid string
	Test  string
}

// DefaultFileNames are the names the trainer expects.
var DefaultFileNames = FileNames{
	Train: "usertrain.txt",
	Valid: "uservalid.txt",
	Test:  "userunseen.txt",
}

type config struct {
	seed     *uint64
	rng      *rand.Rand
	ratios   split.Ratios
	files    FileNames
	manifest string
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		ratios: split.DefaultRatios,
		files:  DefaultFileNames,
		logger: slog.Default(),
	}
}

// WithSeed makes every Build shuffle with a generator seeded from seed, so
// repeated runs over the same tables produce identical files.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
		c.rng = nil
	}
}

// WithRand sets the shuffle generator. It is shared across Build calls.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
			c.seed = nil
		}
	}
}

// WithRatios overrides the train/validation/test proportions
// (default: split.DefaultRatios).
func WithRatios(r split.Ratios) Option {
	return func(c *config) {
		c.ratios = r
	}
}

// WithFileNames overrides output file names. Empty names keep the default.
func WithFileNames(f FileNames) Option {
	return func(c *config) {
		if f.Train != "" {
			c.files.Train = f.Train
		}
		if f.Valid != "" {
			c.files.Valid = f.Valid
		}
		if f.Test != "" {
			c.files.Test = f.Test
		}
	}
}

// WithManifest makes Write also emit a JSON run manifest at path. A relative
// path is resolved against the output directory.
func WithManifest(path string) Option {
	return func(c *config) {
		c.manifest = path
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
