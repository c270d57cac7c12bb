package chansorter

import (
	"context"

	"github.com/UberPyro/ChannelSorter2/events"
)

var _ events.Handler = (*Sorter)(nil)

// HandleChannelEvent dispatches a platform event to the matching sorter
// operation: renames re-slot the channel, restores pull it out of the
// archive (or re-slot it when no archive category is configured).
//
// This makes the Sorter pluggable directly into events.NewListener.
func (s *Sorter) HandleChannelEvent(ctx context.Context, ev events.Event) error {
	switch ev.Kind {
	case events.KindRenamed:
		return s.Reposition(ctx, ev.ChannelID)
	case events.KindRestored:
		if s.cfg.ArchiveCategoryID != 0 {
			return s.Unarchive(ctx, ev.ChannelID)
		}

		return s.Reposition(ctx, ev.ChannelID)
	default:
		// Unknown kinds are not retryable; drop them.
		s.logger.Warn("ignoring unhandled event kind", "kind", ev.Kind)

		return nil
	}
}
