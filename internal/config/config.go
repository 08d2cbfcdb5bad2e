package config

import (
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/errbridge/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel     = string(LogLevelInfo)
	DefaultJournalDB    = "/var/lib/errbridge/journal.db"
	DefaultJournalBatch = 1
	defaultEnvPrefix    = "ERRBRIDGE"
	configEnvVar        = "ERRBRIDGE_CONFIG"
	configName          = "errbridge"
)

// DefaultJournalBatchTimeout is in seconds.
const DefaultJournalBatchTimeout = 5

// DefaultOperands are the division inputs run when none are configured.
var DefaultOperands = []string{"1/0", "0/0", "4/2"}

type Config struct {
	LogLevel            string   `mapstructure:"log_level"`
	Operands            []string `mapstructure:"operands"`
	Journal             bool     `mapstructure:"journal"`
	JournalDB           string   `mapstructure:"journal_db"`
	JournalBatch        int      `mapstructure:"journal_batch"`
	JournalBatchTimeout int      `mapstructure:"journal_batch_timeout"`
	GPU                 bool     `mapstructure:"gpu"`

	// Pairs holds Operands parsed by Validate.
	Pairs []Pair `mapstructure:"-"`
}

// Load reads the configuration from the file named by ERRBRIDGE_CONFIG
// (or the default search path), the environment and the command line
// flags in os.Args, in increasing order of precedence.
func Load(opts ...Option) (*Config, error) {
	return LoadArgs(os.Args[1:], opts...)
}

// LoadArgs is Load with explicit command line arguments.
func LoadArgs(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{
		configPath: os.Getenv(configEnvVar),
		envPrefix:  defaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("operands", DefaultOperands)
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", DefaultJournalDB)
	v.SetDefault("journal_batch", DefaultJournalBatch)
	v.SetDefault("journal_batch_timeout", DefaultJournalBatchTimeout)
	v.SetDefault("gpu", false)

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, warning, error)")
	fs.StringSlice("operands", DefaultOperands, "Division operand pairs as dividend/divisor")
	fs.Bool("journal", false, "Record call outcomes in the journal database")
	fs.String("journal-db", DefaultJournalDB, "Path to the journal database")
	fs.Int("journal-batch", DefaultJournalBatch, "Number of journal entries written per transaction")
	fs.Int("journal-batch-timeout", DefaultJournalBatchTimeout, "Seconds before a partial journal batch is flushed")
	fs.Bool("gpu", false, "Probe NVML through the call shim")
	fs.StringVar(&o.configPath, "config", o.configPath, "Path to the configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for key, flag := range map[string]string{
		"log_level":             "log-level",
		"operands":              "operands",
		"journal":               "journal",
		"journal_db":            "journal-db",
		"journal_batch":         "journal-batch",
		"journal_batch_timeout": "journal-batch-timeout",
		"gpu":                   "gpu",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/etc/errbridge")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the log level and parses the operand pairs.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.JournalBatch < 1 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "journal_batch",
			Value: c.JournalBatch,
		})
	}

	if c.JournalBatchTimeout < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "journal_batch_timeout",
			Value: c.JournalBatchTimeout,
		})
	}

	pairs := make([]Pair, 0, len(c.Operands))
	for _, raw := range c.Operands {
		pair, err := ParsePair(raw)
		if err != nil {
			return err
		}
		pairs = append(pairs, pair)
	}
	c.Pairs = pairs

	return nil
}

// ParsePair parses "a/b" into a Pair.
func ParsePair(raw string) (Pair, error) {
	errFactory := errors.New()

	left, right, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return Pair{}, errFactory.WithData(errors.ErrInvalidOperands, raw)
	}

	a, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return Pair{}, errFactory.Wrap(errors.ErrInvalidOperands, err)
	}

	b, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return Pair{}, errFactory.Wrap(errors.ErrInvalidOperands, err)
	}

	return Pair{A: a, B: b}, nil
}
