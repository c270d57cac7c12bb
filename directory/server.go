package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/UberPyro/ChannelSorter2/internal/logging"
	"github.com/UberPyro/ChannelSorter2/types"
)

// Server exposes a types.Directory implementation over the NATS request/reply
// protocol defined in wire.go.
//
// The process that actually talks to the chat platform embeds a Server around
// its platform-backed directory; remote sorter instances then reach it
// through Client. Handlers run on the NATS dispatcher and answer every
// request, encoding failures into the reply envelope rather than staying
// silent.
type Server struct {
	conn   *nats.Conn
	prefix string
	dir    types.Directory
	logger types.Logger
	subs   []*nats.Subscription
}

// NewServer creates a directory responder.
//
// Parameters:
//   - conn: NATS connection to subscribe on
//   - prefix: Subject prefix, shared with clients (default DefaultSubjectPrefix)
//   - dir: Directory implementation answering the requests
//   - logger: Structured logger; nil falls back to a nop logger
//
// Returns:
//   - *Server: Responder ready for Start
//   - error: types.ErrDirectoryRequired when conn or dir is nil
func NewServer(conn *nats.Conn, prefix string, dir types.Directory, logger types.Logger) (*Server, error) {
	if conn == nil || dir == nil {
		return nil, types.ErrDirectoryRequired
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Server{conn: conn, prefix: prefix, dir: dir, logger: logger}, nil
}

// Start subscribes to every operation subject. Subscriptions share a queue
// group so multiple responder instances load-balance.
func (s *Server) Start() error {
	handlers := map[string]nats.MsgHandler{
		subjectListCategories: s.handleListCategories,
		subjectListChannels:   s.handleListChannels,
		subjectMoveChannel:    s.handleMoveChannel,
		subjectRenameCategory: s.handleRenameCategory,
		subjectCreateChannel:  s.handleCreateChannel,
	}

	for suffix, handler := range handlers {
		subject := s.prefix + "." + suffix
		sub, err := s.conn.QueueSubscribe(subject, "directory", handler)
		if err != nil {
			s.unsubscribeAll()

			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}
	s.logger.Info("directory server started", "prefix", s.prefix)

	return nil
}

// Stop drains the operation subscriptions.
func (s *Server) Stop() {
	s.unsubscribeAll()
	s.logger.Info("directory server stopped")
}

func (s *Server) unsubscribeAll() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = nil
}

func (s *Server) handleListCategories(msg *nats.Msg) {
	categories, err := s.dir.ListCategories(context.Background())
	s.reply(msg, listCategoriesReply{Categories: categories, Error: errString(err)})
}

func (s *Server) handleListChannels(msg *nats.Msg) {
	var req listChannelsRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.reply(msg, listChannelsReply{Error: err.Error()})

		return
	}
	channels, err := s.dir.ListChannels(context.Background(), req.CategoryID)
	s.reply(msg, listChannelsReply{Channels: channels, Error: errString(err)})
}

func (s *Server) handleMoveChannel(msg *nats.Msg) {
	var req moveChannelRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.reply(msg, statusReply{Error: err.Error()})

		return
	}
	err := s.dir.MoveChannel(context.Background(), req.ChannelID, req.CategoryID, req.Position)
	s.reply(msg, statusReply{Error: errString(err)})
}

func (s *Server) handleRenameCategory(msg *nats.Msg) {
	var req renameCategoryRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.reply(msg, statusReply{Error: err.Error()})

		return
	}
	err := s.dir.RenameCategory(context.Background(), req.CategoryID, req.Name)
	s.reply(msg, statusReply{Error: errString(err)})
}

func (s *Server) handleCreateChannel(msg *nats.Msg) {
	var req createChannelRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.reply(msg, createChannelReply{Error: err.Error()})

		return
	}
	ch, err := s.dir.CreateChannel(context.Background(), req.Name, req.CategoryID, req.Position)
	s.reply(msg, createChannelReply{Channel: ch, Error: errString(err)})
}

func (s *Server) reply(msg *nats.Msg, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encode directory reply", "error", err)

		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Error("send directory reply", "subject", msg.Subject, "error", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
