package chansorter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/UberPyro/ChannelSorter2/balance"
	"github.com/UberPyro/ChannelSorter2/internal/logging"
	"github.com/UberPyro/ChannelSorter2/internal/metrics"
	"github.com/UberPyro/ChannelSorter2/reconcile"
	"github.com/UberPyro/ChannelSorter2/types"
)

// Stats summarizes one sorting run.
type Stats struct {
	// Categories is how many project categories participated.
	Categories int

	// Channels is how many channels the run considered.
	Channels int

	// Renames is how many category labels were changed.
	Renames int

	// Moves is how many channels were relocated.
	Moves int
}

// Sorter organizes the registered project categories: balanced alphabetic
// partitioning, category relabeling, and per-channel repositioning over the
// shared position space.
//
// A Sorter holds no durable state; every operation re-reads the directory
// service's current truth. Operations on one Sorter are serialized
// internally; use WithLock to serialize full runs across instances.
type Sorter struct {
	cfg     Config
	dir     types.Directory
	reg     types.Registry
	part    balance.Partitioner
	logger  types.Logger
	metrics types.MetricsCollector
	hooks   *types.Hooks
	lock    Lock

	mu sync.Mutex
}

// New creates a Sorter.
//
// Parameters:
//   - cfg: Configuration (nil gets defaults; defaults are applied and the
//     result validated either way)
//   - dir: Directory service owning categories and channels
//   - reg: Registry naming the project categories
//   - part: Partitioner computing balanced letter-range boundaries
//   - opts: Optional logger, metrics, hooks and cross-instance lock
//
// Returns:
//   - *Sorter: Initialized sorter
//   - error: Configuration or missing-dependency error
func New(cfg *Config, dir types.Directory, reg types.Registry, part balance.Partitioner, opts ...Option) (*Sorter, error) {
	if dir == nil {
		return nil, ErrDirectoryRequired
	}
	if reg == nil {
		return nil, ErrRegistryRequired
	}
	if part == nil {
		return nil, ErrPartitionerRequired
	}
	if cfg == nil {
		cfg = &Config{}
	}
	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := sorterOptions{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Sorter{
		cfg:     *cfg,
		dir:     dir,
		reg:     reg,
		part:    part,
		logger:  options.logger,
		metrics: options.metrics,
		hooks:   options.hooks,
		lock:    options.lock,
	}, nil
}

// Sort performs one full sorting run.
//
// The run flattens the project categories' channels, sorts them by name,
// partitions the first-letter frequency buckets into one balanced segment
// per category, relabels categories whose letter range changed, and moves
// each out-of-place channel to its sorted slot. Moves are issued one at a
// time; each one is a single directory call, with the implied shifts of
// other channels applied directory-side.
//
// Returns:
//   - Stats: Renames and moves performed
//   - error: ErrSortInProgress when another instance holds the lock, or the
//     first directory/partition failure
func (s *Sorter) Sort(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("acquire sort lock: %w", err)
		}
		if !acquired {
			return Stats{}, ErrSortInProgress
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("release sort lock", "error", err)
			}
		}()
	}

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	started := time.Now()
	stats, err := s.sortOnce(ctx)
	if err != nil {
		s.fireError(ctx, err)

		return stats, err
	}

	s.metrics.RecordSortDuration(time.Since(started).Seconds())
	s.metrics.RecordCategoryRenames(stats.Renames)
	s.metrics.RecordChannelMoves(stats.Moves)
	s.logger.Info("sorting run complete",
		"categories", stats.Categories,
		"channels", stats.Channels,
		"renames", stats.Renames,
		"moves", stats.Moves,
		"elapsed", time.Since(started),
	)

	return stats, nil
}

func (s *Sorter) sortOnce(ctx context.Context) (Stats, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Categories: len(state.categories), Channels: len(state.sorted)}
	if len(state.sorted) == 0 {
		return stats, nil
	}
	if err := state.space.Verify(); err != nil {
		return stats, err
	}

	letters, weights := balance.LetterBuckets(state.sorted)
	boundaries, err := s.part.Boundaries(weights, len(state.categories))
	if err != nil {
		return stats, err
	}
	segments := balance.Segments(weights, boundaries)

	renames, err := s.relabelCategories(ctx, state.categories, letters, boundaries)
	if err != nil {
		return stats, err
	}
	stats.Renames = renames

	moves, err := s.applySegments(ctx, state, segments)
	stats.Moves = moves

	return stats, err
}

// relabelCategories renames every category whose letter range changed.
// Categories whose segment covers no letters keep their current label.
func (s *Sorter) relabelCategories(ctx context.Context, categories []types.Category, letters []rune, boundaries []int) (int, error) {
	bounds := make([]int, 0, len(boundaries)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, boundaries...)
	bounds = append(bounds, len(letters))

	renames := 0
	for i, cat := range categories {
		lo, hi := bounds[i], bounds[i+1]
		if lo >= hi {
			continue
		}
		label := s.categoryLabel(letters[lo], letters[hi-1])
		if label == cat.Name {
			continue
		}
		if err := s.dir.RenameCategory(ctx, cat.ID, label); err != nil {
			return renames, fmt.Errorf("rename category %d: %w", cat.ID, err)
		}
		renames++
		s.logger.Debug("category relabeled", "category", cat.ID, "from", cat.Name, "to", label)
		s.fireCategoryRenamed(ctx, cat.ID, cat.Name, label)
	}

	return renames, nil
}

// applySegments walks the name-sorted channel list and moves every channel
// not already at its sorted slot, folding each plan back into the local
// space model so later plans see the evolving state.
func (s *Sorter) applySegments(ctx context.Context, state *runState, segments []balance.Segment) (int, error) {
	moves := 0
	prevPos := -1
	for seg := range segments {
		category := state.categories[seg]
		for rank := 0; rank < segments[seg].Len(); rank++ {
			ch := state.sorted[segments[seg].Start+rank]

			// Anchor for a still-empty category: one past the previous
			// channel in sorted order, or the base of the space.
			anchor := state.space.BasePosition()
			if prevPos >= 0 {
				anchor = prevPos + 1
			}

			plan, err := state.space.Reposition(ch, category.ID, rank, anchor)
			if err != nil {
				return moves, fmt.Errorf("plan move of channel %d: %w", ch.ID, err)
			}

			current, _ := state.space.Lookup(ch.ID)
			if plan.Position != current.Position || plan.CategoryID != current.CategoryID {
				if err := s.dir.MoveChannel(ctx, ch.ID, plan.CategoryID, plan.Position); err != nil {
					return moves, fmt.Errorf("move channel %d: %w", ch.ID, err)
				}
				state.space.Apply(plan)
				moves++
				s.logger.Debug("channel moved",
					"channel", ch.ID,
					"name", ch.Name,
					"category", plan.CategoryID,
					"position", plan.Position,
				)
				s.fireChannelMoved(ctx, ch, current.CategoryID, plan)
			}

			placed, _ := state.space.Lookup(ch.ID)
			prevPos = placed.Position
		}
	}

	return moves, nil
}

// Reposition re-slots a single channel after a rename, across all project
// categories: the channel lands right behind the last channel whose name
// sorts before it, in that neighbor's category.
//
// Parameters:
//   - channelID: Channel to re-slot; must currently sit in a project
//     category or the archive (archived channels are restored first)
//
// Returns:
//   - error: ErrUnknownChannel when no tracked category holds the channel
func (s *Sorter) Reposition(ctx context.Context, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	err := s.repositionLocked(ctx, channelID)
	s.metrics.RecordReposition(err == nil)
	if err != nil {
		s.fireError(ctx, err)
	}

	return err
}

func (s *Sorter) repositionLocked(ctx context.Context, channelID int64) error {
	state, err := s.loadState(ctx)
	if err != nil {
		return err
	}

	ch, ok := state.space.Lookup(channelID)
	if !ok {
		return fmt.Errorf("%w: %d", types.ErrUnknownChannel, channelID)
	}

	targetCat, rank := s.slotFor(state, ch)
	plan, err := state.space.Reposition(ch, targetCat, rank, state.anchorFor(targetCat))
	if err != nil {
		return fmt.Errorf("plan move of channel %d: %w", channelID, err)
	}
	if plan.Position == ch.Position && plan.CategoryID == ch.CategoryID {
		return nil
	}
	if err := s.dir.MoveChannel(ctx, channelID, plan.CategoryID, plan.Position); err != nil {
		return fmt.Errorf("move channel %d: %w", channelID, err)
	}
	state.space.Apply(plan)
	s.logger.Info("channel repositioned",
		"channel", channelID,
		"name", ch.Name,
		"category", plan.CategoryID,
		"position", plan.Position,
	)
	s.fireChannelMoved(ctx, ch, ch.CategoryID, plan)

	return nil
}

// Place creates a new channel directly at its sorted slot.
//
// Parameters:
//   - name: Display name of the channel to create
//
// Returns:
//   - types.Channel: The created channel as reported by the directory
//   - error: Directory failure, or ErrNoCategories with an empty registry
func (s *Sorter) Place(ctx context.Context, name string) (types.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	state, err := s.loadState(ctx)
	if err != nil {
		return types.Channel{}, err
	}

	probe := types.Channel{Name: name}
	targetCat, rank := s.slotFor(state, probe)
	siblings := state.space.CategoryChannels(targetCat)

	var position int
	switch {
	case rank < len(siblings):
		position = siblings[rank].Position
	case len(siblings) > 0:
		position = siblings[len(siblings)-1].Position + 1
	default:
		position = state.anchorFor(targetCat)
	}

	created, err := s.dir.CreateChannel(ctx, name, targetCat, position)
	if err != nil {
		return types.Channel{}, fmt.Errorf("create channel %q: %w", name, err)
	}
	s.logger.Info("channel placed",
		"channel", created.ID,
		"name", name,
		"category", targetCat,
		"position", position,
	)
	s.fireChannelMoved(ctx, created, 0, reconcile.Plan{
		ChannelID:  created.ID,
		CategoryID: targetCat,
		Position:   position,
	})

	return created, nil
}

// Archive moves a channel to the end of the archive category.
//
// Returns:
//   - error: ErrInvalidConfig when no archive category is configured,
//     ErrUnknownChannel when no tracked category holds the channel
func (s *Sorter) Archive(ctx context.Context, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ArchiveCategoryID == 0 {
		return fmt.Errorf("%w: no archive category configured", ErrInvalidConfig)
	}

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	state, err := s.loadState(ctx)
	if err != nil {
		return err
	}
	ch, ok := state.space.Lookup(channelID)
	if !ok {
		return fmt.Errorf("%w: %d", types.ErrUnknownChannel, channelID)
	}
	if ch.CategoryID == s.cfg.ArchiveCategoryID {
		return nil
	}

	archived := state.space.CategoryChannels(s.cfg.ArchiveCategoryID)
	plan, err := state.space.Reposition(ch, s.cfg.ArchiveCategoryID, len(archived), state.space.NextPosition())
	if err != nil {
		return fmt.Errorf("plan archive of channel %d: %w", channelID, err)
	}
	if err := s.dir.MoveChannel(ctx, channelID, plan.CategoryID, plan.Position); err != nil {
		return fmt.Errorf("archive channel %d: %w", channelID, err)
	}
	state.space.Apply(plan)
	s.logger.Info("channel archived", "channel", channelID, "name", ch.Name, "position", plan.Position)
	s.fireChannelMoved(ctx, ch, ch.CategoryID, plan)

	return nil
}

// Unarchive returns an archived channel to its sorted slot among the project
// categories.
//
// Returns:
//   - error: ErrInvalidConfig when no archive category is configured,
//     ErrUnknownChannel when the archive does not hold the channel
func (s *Sorter) Unarchive(ctx context.Context, channelID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ArchiveCategoryID == 0 {
		return fmt.Errorf("%w: no archive category configured", ErrInvalidConfig)
	}

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	return s.repositionLocked(ctx, channelID)
}

// slotFor finds the project category and rank where ch belongs. The channel
// stays with the last project channel whose name sorts before ch's; a channel
// that sorts before everything heads the first occupied category, and one
// that sorts after everything tails the last.
func (s *Sorter) slotFor(state *runState, ch types.Channel) (categoryID int64, rank int) {
	found := false
	var category int64
	for _, other := range state.sorted {
		if other.ID == ch.ID {
			continue
		}
		if other.Name > ch.Name {
			if !found {
				category = other.CategoryID
				found = true
			}

			break
		}
		category = other.CategoryID
		found = true
	}
	if !found {
		category = state.categories[len(state.categories)-1].ID
	}

	return category, rankExcluding(ch, state.space.CategoryChannels(category))
}

// rankExcluding computes ch's name rank among siblings, ignoring ch itself
// when it already sits in the category.
func rankExcluding(ch types.Channel, siblings []types.Channel) int {
	filtered := siblings[:0:0]
	for _, sib := range siblings {
		if sib.ID != ch.ID {
			filtered = append(filtered, sib)
		}
	}

	return reconcile.RankByName(ch.Name, filtered)
}

// runState is one operation's snapshot of the directory's current truth.
type runState struct {
	// categories are the project categories in registry order.
	categories []types.Category

	// sorted is every project channel ordered by name (position-stable for
	// identical names). Archived channels are excluded.
	sorted []types.Channel

	// space covers project and archive channels, since they share one
	// ordinal numbering.
	space *reconcile.Space
}

// anchorFor returns the insertion position for a currently empty category:
// one past the last channel of the categories preceding it in registry
// order, or the base of the space when none hold channels.
func (st *runState) anchorFor(targetCat int64) int {
	anchor := -1
	for _, cat := range st.categories {
		if cat.ID == targetCat {
			break
		}
		for _, ch := range st.space.CategoryChannels(cat.ID) {
			if ch.Position > anchor {
				anchor = ch.Position
			}
		}
	}
	if anchor >= 0 {
		return anchor + 1
	}

	return st.space.BasePosition()
}

// loadState reads the registry and directory into a runState.
func (s *Sorter) loadState(ctx context.Context) (*runState, error) {
	ids, err := s.reg.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read category registry: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoCategories
	}

	known, err := s.dir.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byID := make(map[int64]types.Category, len(known))
	for _, cat := range known {
		byID[cat.ID] = cat
	}

	state := &runState{categories: make([]types.Category, 0, len(ids))}
	var all []types.Channel
	for _, id := range ids {
		cat, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", types.ErrUnknownCategory, id)
		}
		state.categories = append(state.categories, cat)

		channels, err := s.dir.ListChannels(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list channels of category %d: %w", id, err)
		}
		state.sorted = append(state.sorted, channels...)
		all = append(all, channels...)
	}

	if s.cfg.ArchiveCategoryID != 0 {
		archived, err := s.dir.ListChannels(ctx, s.cfg.ArchiveCategoryID)
		if err != nil {
			return nil, fmt.Errorf("list archive channels: %w", err)
		}
		all = append(all, archived...)
	}

	sort.SliceStable(state.sorted, func(i, j int) bool {
		return state.sorted[i].Compare(state.sorted[j]) < 0
	})
	state.space = reconcile.NewSpace(all)

	return state, nil
}

// categoryLabel renders the label for a category covering [first, last].
func (s *Sorter) categoryLabel(first, last rune) string {
	if first == last {
		if strings.Count(s.cfg.CategorySingleLabelFormat, "%c") == 2 {
			return fmt.Sprintf(s.cfg.CategorySingleLabelFormat, first, last)
		}

		return fmt.Sprintf(s.cfg.CategorySingleLabelFormat, first)
	}

	return fmt.Sprintf(s.cfg.CategoryLabelFormat, first, last)
}

// operationContext layers the configured timeout onto the caller's context.
func (s *Sorter) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

func (s *Sorter) fireCategoryRenamed(ctx context.Context, categoryID int64, oldName, newName string) {
	if s.hooks == nil || s.hooks.OnCategoryRenamed == nil {
		return
	}
	if err := s.hooks.OnCategoryRenamed(ctx, categoryID, oldName, newName); err != nil {
		s.logger.Warn("OnCategoryRenamed hook failed", "category", categoryID, "error", err)
	}
}

func (s *Sorter) fireChannelMoved(ctx context.Context, ch types.Channel, fromCategory int64, plan reconcile.Plan) {
	if s.hooks == nil || s.hooks.OnChannelMoved == nil {
		return
	}
	moved := ch
	moved.CategoryID = plan.CategoryID
	moved.Position = plan.Position
	if err := s.hooks.OnChannelMoved(ctx, moved, fromCategory); err != nil {
		s.logger.Warn("OnChannelMoved hook failed", "channel", ch.ID, "error", err)
	}
}

func (s *Sorter) fireError(ctx context.Context, opErr error) {
	s.logger.Error("operation failed", "error", opErr)
	if s.hooks == nil || s.hooks.OnError == nil {
		return
	}
	if err := s.hooks.OnError(ctx, opErr); err != nil {
		s.logger.Warn("OnError hook failed", "error", err)
	}
}
