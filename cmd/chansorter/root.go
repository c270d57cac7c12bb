package main

import (
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	chansorter "github.com/UberPyro/ChannelSorter2"
	"github.com/UberPyro/ChannelSorter2/balance"
	"github.com/UberPyro/ChannelSorter2/directory"
	"github.com/UberPyro/ChannelSorter2/events"
	"github.com/UberPyro/ChannelSorter2/internal/logging"
	"github.com/UberPyro/ChannelSorter2/registry"
	"github.com/UberPyro/ChannelSorter2/types"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    cliConfig
	logger types.Logger
)

// cliConfig is the YAML configuration for the chansorter CLI.
type cliConfig struct {
	// NATSURL is the NATS server to connect to. The NATS_URL environment
	// variable overrides it; default nats.DefaultURL.
	NATSURL string `yaml:"natsUrl"`

	// RegistryPath is the project-category registry file, one category id
	// per line. Default "categories.txt".
	RegistryPath string `yaml:"registryPath"`

	// SubjectPrefix is the directory service's subject prefix.
	SubjectPrefix string `yaml:"subjectPrefix"`

	// MetricsAddr exposes Prometheus metrics over HTTP when set
	// (serve command only), e.g. ":9091".
	MetricsAddr string `yaml:"metricsAddr"`

	// Partitioner picks the boundary search: "exhaustive" (default) or
	// "dynamic".
	Partitioner string `yaml:"partitioner"`

	// Sorter configures the sorting engine.
	Sorter chansorter.Config `yaml:"sorter"`

	// Events configures the platform event listener (serve command).
	Events events.Config `yaml:"events"`
}

var rootCmd = &cobra.Command{
	Use:   "chansorter",
	Short: "Keep chat channels sorted into balanced alphabetic categories",
	Long: `chansorter organizes a growing set of named channels into a fixed number
of alphabetically contiguous, balanced categories, talking to the directory
service over NATS.

Commands:
  sort        run one full sorting pass and exit
  serve       follow rename/restore events and reposition channels
  categories  read or replace the project-category registry`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		z, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = logging.NewZap(z.Sugar())

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func loadConfig() error {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATSURL = url
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = nats.DefaultURL
	}
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = "categories.txt"
	}
	if cfg.Partitioner == "" {
		cfg.Partitioner = "exhaustive"
	}
	chansorter.SetDefaults(&cfg.Sorter)
	events.SetDefaults(&cfg.Events)

	return cfg.Sorter.Validate()
}

func connect() (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.NATSURL, nats.Name("chansorter"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", cfg.NATSURL, err)
	}

	return nc, nil
}

func newPartitioner() (balance.Partitioner, error) {
	switch cfg.Partitioner {
	case "exhaustive":
		return balance.NewExhaustive(), nil
	case "dynamic":
		return balance.NewDynamicProgramming(), nil
	default:
		return nil, fmt.Errorf("unknown partitioner %q (want exhaustive or dynamic)", cfg.Partitioner)
	}
}

// newSorter assembles the sorter over the NATS-backed directory.
func newSorter(nc *nats.Conn, opts ...chansorter.Option) (*chansorter.Sorter, error) {
	dir, err := directory.NewClient(nc, directory.ClientConfig{SubjectPrefix: cfg.SubjectPrefix}, logger)
	if err != nil {
		return nil, err
	}
	part, err := newPartitioner()
	if err != nil {
		return nil, err
	}
	reg := registry.NewFile(cfg.RegistryPath)

	opts = append(opts, chansorter.WithLogger(logger))

	return chansorter.New(&cfg.Sorter, dir, reg, part, opts...)
}
