package events

import (
	"fmt"
	"time"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Config is the configuration for the event Listener.
//
// All duration fields accept standard Go duration strings like "500ms", "5s".
type Config struct {
	// RenamedSubject carries channel-rename events.
	// Default: "chansorter.events.renamed".
	RenamedSubject string `yaml:"renamedSubject"`

	// RestoredSubject carries channel-restore events (activity in an
	// archived channel). Default: "chansorter.events.restored".
	RestoredSubject string `yaml:"restoredSubject"`

	// QueueGroup makes listener instances load-balance instead of all
	// processing every event. Default: "chansorter".
	QueueGroup string `yaml:"queueGroup"`

	// MaxRetries bounds handler retries per event before it is dropped.
	// Default: 3.
	MaxRetries int `yaml:"maxRetries"`

	// RetryBaseDelay is the first retry delay. Default: 200ms.
	RetryBaseDelay time.Duration `yaml:"retryBaseDelay"`

	// RetryMaxDelay caps retry delays. Default: 5s.
	RetryMaxDelay time.Duration `yaml:"retryMaxDelay"`

	// RetryMultiplier controls delay growth between retries. Default: 2.0.
	RetryMultiplier float64 `yaml:"retryMultiplier"`

	// RetrySeed makes retry jitter deterministic when non-zero. Tests only.
	RetrySeed int64 `yaml:"retrySeed"`

	// DedupeWindow is how long an event's content hash suppresses identical
	// redeliveries. Default: 30s.
	DedupeWindow time.Duration `yaml:"dedupeWindow"`
}

// SetDefaults fills in missing configuration values.
func SetDefaults(cfg *Config) {
	if cfg.RenamedSubject == "" {
		cfg.RenamedSubject = "chansorter.events.renamed"
	}
	if cfg.RestoredSubject == "" {
		cfg.RestoredSubject = "chansorter.events.restored"
	}
	if cfg.QueueGroup == "" {
		cfg.QueueGroup = "chansorter"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBaseDelay == 0 {
		cfg.RetryBaseDelay = 200 * time.Millisecond
	}
	if cfg.RetryMaxDelay == 0 {
		cfg.RetryMaxDelay = 5 * time.Second
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = 2.0
	}
	if cfg.DedupeWindow == 0 {
		cfg.DedupeWindow = 30 * time.Second
	}
}

// Validate checks the configuration for contradictions.
func (cfg *Config) Validate() error {
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: maxRetries must not be negative", types.ErrInvalidConfig)
	}
	if cfg.RetryMaxDelay < cfg.RetryBaseDelay {
		return fmt.Errorf("%w: retryMaxDelay below retryBaseDelay", types.ErrInvalidConfig)
	}
	if cfg.RenamedSubject == cfg.RestoredSubject {
		return fmt.Errorf("%w: renamed and restored subjects must differ", types.ErrInvalidConfig)
	}

	return nil
}
