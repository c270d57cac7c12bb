package chansorter

import (
	"fmt"
	"strings"
	"time"
)

// LeaseConfig configures the cross-instance sort lease.
//
// The lease serializes sorting runs when several bot instances run for
// redundancy. It lives in a JetStream KV bucket whose TTL bounds how long a
// crashed holder can block the others.
type LeaseConfig struct {
	// Bucket is the KV bucket name holding lease claims.
	Bucket string `yaml:"bucket"`

	// Key is the lease key within the bucket.
	Key string `yaml:"key"`

	// TTL is the bucket key TTL. A crashed holder frees the lease after
	// at most this long.
	TTL time.Duration `yaml:"ttl"`
}

// Config is the configuration for the Sorter.
//
// All duration fields accept standard Go duration strings like "30s", "5m".
type Config struct {
	// CategoryLabelFormat renders a category label from its first and last
	// leading letter, e.g. "Projects A-D". The two %c verbs receive the
	// letters in order.
	CategoryLabelFormat string `yaml:"categoryLabelFormat"`

	// CategorySingleLabelFormat renders the label when a category covers a
	// single leading letter. One or two %c verbs; with two, the letter is
	// passed for both, rendering e.g. "Projects A-A".
	CategorySingleLabelFormat string `yaml:"categorySingleLabelFormat"`

	// ArchiveCategoryID identifies the category receiving archived
	// channels. Zero disables Archive/Unarchive.
	ArchiveCategoryID int64 `yaml:"archiveCategoryId"`

	// OperationTimeout bounds one full sorting run or reposition call,
	// including every directory round trip it issues. Zero means no limit
	// beyond the caller's context.
	OperationTimeout time.Duration `yaml:"operationTimeout"`

	// Lease configures the cross-instance sort lease. Used by the CLI when
	// several instances share one position space; the library only consumes
	// the lease through WithLock.
	Lease LeaseConfig `yaml:"lease"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	SetDefaults(cfg)

	return cfg
}

// SetDefaults fills in missing configuration values.
func SetDefaults(cfg *Config) {
	if cfg.CategoryLabelFormat == "" {
		cfg.CategoryLabelFormat = "Projects %c-%c"
	}
	if cfg.CategorySingleLabelFormat == "" {
		cfg.CategorySingleLabelFormat = "Projects %c-%c"
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = 2 * time.Minute
	}
	if cfg.Lease.Bucket == "" {
		cfg.Lease.Bucket = "chansorter-leases"
	}
	if cfg.Lease.Key == "" {
		cfg.Lease.Key = "sort"
	}
	if cfg.Lease.TTL == 0 {
		cfg.Lease.TTL = 30 * time.Second
	}
}

// Validate checks the configuration for contradictions.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the first problem found
func (cfg *Config) Validate() error {
	if strings.Count(cfg.CategoryLabelFormat, "%c") != 2 {
		return fmt.Errorf("%w: categoryLabelFormat needs exactly two %%c verbs", ErrInvalidConfig)
	}
	if n := strings.Count(cfg.CategorySingleLabelFormat, "%c"); n != 1 && n != 2 {
		return fmt.Errorf("%w: categorySingleLabelFormat needs one or two %%c verbs", ErrInvalidConfig)
	}
	if cfg.OperationTimeout < 0 {
		return fmt.Errorf("%w: operationTimeout must not be negative", ErrInvalidConfig)
	}
	if cfg.Lease.TTL < 0 {
		return fmt.Errorf("%w: lease ttl must not be negative", ErrInvalidConfig)
	}

	return nil
}
