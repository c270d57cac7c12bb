package directory

import "github.com/UberPyro/ChannelSorter2/types"

// NATS wire protocol: one request/reply subject per directory operation,
// JSON-encoded payloads. Subjects are formed as "<prefix>.<suffix>" with the
// prefix shared by Client and Server.
const (
	subjectListCategories = "categories.list"
	subjectRenameCategory = "categories.rename"
	subjectListChannels   = "channels.list"
	subjectMoveChannel    = "channels.move"
	subjectCreateChannel  = "channels.create"
)

// DefaultSubjectPrefix is the subject prefix used when none is configured.
const DefaultSubjectPrefix = "chansorter.directory"

type listCategoriesReply struct {
	Categories []types.Category `json:"categories"`
	Error      string           `json:"error,omitempty"`
}

type listChannelsRequest struct {
	CategoryID int64 `json:"categoryId"`
}

type listChannelsReply struct {
	Channels []types.Channel `json:"channels"`
	Error    string          `json:"error,omitempty"`
}

type moveChannelRequest struct {
	ChannelID  int64 `json:"channelId"`
	CategoryID int64 `json:"categoryId"`
	Position   int   `json:"position"`
}

type renameCategoryRequest struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type createChannelRequest struct {
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
	Position   int    `json:"position"`
}

type createChannelReply struct {
	Channel types.Channel `json:"channel"`
	Error   string        `json:"error,omitempty"`
}

// statusReply acknowledges a mutation.
type statusReply struct {
	Error string `json:"error,omitempty"`
}
