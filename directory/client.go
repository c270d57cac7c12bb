package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/UberPyro/ChannelSorter2/internal/logging"
	"github.com/UberPyro/ChannelSorter2/types"
)

// ClientConfig configures the NATS directory client.
type ClientConfig struct {
	// SubjectPrefix is prepended to every operation subject.
	// Default: DefaultSubjectPrefix.
	SubjectPrefix string `yaml:"subjectPrefix"`

	// RequestTimeout bounds each directory round trip.
	// Default: 5 seconds.
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// setDefaults fills in missing client configuration values.
func (c *ClientConfig) setDefaults() {
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = DefaultSubjectPrefix
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 5 * time.Second
	}
}

// Client is a directory-service client speaking the NATS request/reply
// protocol defined in wire.go.
//
// The process actually connected to the chat platform runs the matching
// Server; this client lets sorter instances stay platform-agnostic.
//
// The client remembers the last label it saw for each category, so log and
// hook consumers can resolve ids without another round trip.
type Client struct {
	conn   *nats.Conn
	cfg    ClientConfig
	logger types.Logger
	labels *xsync.Map[int64, string]
}

var _ types.Directory = (*Client)(nil)

// NewClient creates a directory client over an existing NATS connection.
//
// Parameters:
//   - conn: NATS connection shared with the rest of the process
//   - cfg: Client configuration (zero value gets defaults)
//   - logger: Structured logger; nil falls back to a nop logger
//
// Returns:
//   - *Client: Initialized client
//   - error: types.ErrDirectoryRequired when conn is nil
func NewClient(conn *nats.Conn, cfg ClientConfig, logger types.Logger) (*Client, error) {
	if conn == nil {
		return nil, types.ErrDirectoryRequired
	}
	cfg.setDefaults()
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		conn:   conn,
		cfg:    cfg,
		logger: logger,
		labels: xsync.NewMap[int64, string](),
	}, nil
}

// ListCategories returns every category known to the directory service.
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	var reply listCategoriesReply
	if err := c.request(ctx, subjectListCategories, struct{}{}, &reply); err != nil {
		return nil, err
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("list categories: %s", reply.Error)
	}
	for _, cat := range reply.Categories {
		c.labels.Store(cat.ID, cat.Name)
	}

	return reply.Categories, nil
}

// CategoryLabel returns the last label observed for a category, without a
// round trip. The cache fills from ListCategories and RenameCategory calls
// made through this client.
func (c *Client) CategoryLabel(categoryID int64) (string, bool) {
	return c.labels.Load(categoryID)
}

// ListChannels returns the channels of one category ordered by position.
func (c *Client) ListChannels(ctx context.Context, categoryID int64) ([]types.Channel, error) {
	var reply listChannelsReply
	if err := c.request(ctx, subjectListChannels, listChannelsRequest{CategoryID: categoryID}, &reply); err != nil {
		return nil, err
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("list channels of %d: %s", categoryID, reply.Error)
	}

	return reply.Channels, nil
}

// MoveChannel asks the directory service to place a channel.
func (c *Client) MoveChannel(ctx context.Context, channelID, categoryID int64, position int) error {
	req := moveChannelRequest{ChannelID: channelID, CategoryID: categoryID, Position: position}
	var reply statusReply
	if err := c.request(ctx, subjectMoveChannel, req, &reply); err != nil {
		return err
	}
	if reply.Error != "" {
		return fmt.Errorf("%w: %s", types.ErrMoveRejected, reply.Error)
	}

	return nil
}

// RenameCategory asks the directory service to relabel a category.
func (c *Client) RenameCategory(ctx context.Context, categoryID int64, name string) error {
	req := renameCategoryRequest{CategoryID: categoryID, Name: name}
	var reply statusReply
	if err := c.request(ctx, subjectRenameCategory, req, &reply); err != nil {
		return err
	}
	if reply.Error != "" {
		return fmt.Errorf("%w: %s", types.ErrMoveRejected, reply.Error)
	}
	c.labels.Store(categoryID, name)

	return nil
}

// CreateChannel asks the directory service to create a channel.
func (c *Client) CreateChannel(ctx context.Context, name string, categoryID int64, position int) (types.Channel, error) {
	req := createChannelRequest{Name: name, CategoryID: categoryID, Position: position}
	var reply createChannelReply
	if err := c.request(ctx, subjectCreateChannel, req, &reply); err != nil {
		return types.Channel{}, err
	}
	if reply.Error != "" {
		return types.Channel{}, fmt.Errorf("%w: %s", types.ErrMoveRejected, reply.Error)
	}

	return reply.Channel, nil
}

// request performs one JSON request/reply round trip with the configured
// timeout layered onto the caller's context.
func (c *Client) request(ctx context.Context, suffix string, req, reply any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", suffix, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	subject := c.cfg.SubjectPrefix + "." + suffix
	msg, err := c.conn.RequestWithContext(ctx, subject, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, nats.ErrNoResponders) {
			return fmt.Errorf("%w: %s: %w", types.ErrDirectoryUnavailable, subject, err)
		}

		return fmt.Errorf("request %s: %w", subject, err)
	}
	if err := json.Unmarshal(msg.Data, reply); err != nil {
		return fmt.Errorf("decode %s reply: %w", suffix, err)
	}

	return nil
}
