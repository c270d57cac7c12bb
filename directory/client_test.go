package directory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/directory"
	chansortertest "github.com/UberPyro/ChannelSorter2/testing"
	"github.com/UberPyro/ChannelSorter2/types"
)

// startDirectory wires a Memory-backed Server and a Client over one embedded
// NATS server.
func startDirectory(t *testing.T) (*directory.Memory, *directory.Client) {
	t.Helper()

	_, nc := chansortertest.StartEmbeddedNATS(t)

	mem := directory.NewMemory()
	srv, err := directory.NewServer(nc, "", mem, chansortertest.NewTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	client, err := directory.NewClient(nc, directory.ClientConfig{}, chansortertest.NewTestLogger(t))
	require.NoError(t, err)

	return mem, client
}

func TestNewClientRequiresConnection(t *testing.T) {
	_, err := directory.NewClient(nil, directory.ClientConfig{}, nil)
	require.ErrorIs(t, err, types.ErrDirectoryRequired)
}

func TestNewServerRequiresDependencies(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	_, err := directory.NewServer(nil, "", directory.NewMemory(), nil)
	require.ErrorIs(t, err, types.ErrDirectoryRequired)

	_, err = directory.NewServer(nc, "", nil, nil)
	require.ErrorIs(t, err, types.ErrDirectoryRequired)
}

func TestClientServerRoundTrip(t *testing.T) {
	mem, client := startDirectory(t)

	cat := mem.AddCategory("Projects A-C")
	apple := mem.AddChannel("apple", cat.ID)
	banana := mem.AddChannel("banana", cat.ID)

	t.Run("list categories", func(t *testing.T) {
		cats, err := client.ListCategories(t.Context())
		require.NoError(t, err)
		require.Equal(t, []types.Category{cat}, cats)
	})

	t.Run("list channels", func(t *testing.T) {
		channels, err := client.ListChannels(t.Context(), cat.ID)
		require.NoError(t, err)
		require.Equal(t, []types.Channel{apple, banana}, channels)
	})

	t.Run("move channel", func(t *testing.T) {
		require.NoError(t, client.MoveChannel(t.Context(), apple.ID, cat.ID, 1))

		moved, ok := mem.Channel(apple.ID)
		require.True(t, ok)
		require.Equal(t, 1, moved.Position)
	})

	t.Run("rename category", func(t *testing.T) {
		require.NoError(t, client.RenameCategory(t.Context(), cat.ID, "Projects A-B"))

		cats, err := client.ListCategories(t.Context())
		require.NoError(t, err)
		require.Equal(t, "Projects A-B", cats[0].Name)
	})

	t.Run("label cache", func(t *testing.T) {
		label, ok := client.CategoryLabel(cat.ID)
		require.True(t, ok)
		require.Equal(t, "Projects A-B", label)

		_, ok = client.CategoryLabel(12345)
		require.False(t, ok)
	})

	t.Run("create channel", func(t *testing.T) {
		created, err := client.CreateChannel(t.Context(), "cherry", cat.ID, 2)
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, 2, created.Position)

		channels, err := client.ListChannels(t.Context(), cat.ID)
		require.NoError(t, err)
		require.Len(t, channels, 3)
	})
}

func TestClientSurfacesServerErrors(t *testing.T) {
	_, client := startDirectory(t)

	t.Run("unknown category on list", func(t *testing.T) {
		_, err := client.ListChannels(t.Context(), 999)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown category")
	})

	t.Run("rejected move", func(t *testing.T) {
		err := client.MoveChannel(t.Context(), 999, 999, 0)
		require.ErrorIs(t, err, types.ErrMoveRejected)
	})
}

func TestClientWithoutResponder(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	client, err := directory.NewClient(nc, directory.ClientConfig{
		SubjectPrefix:  "nobody.home",
		RequestTimeout: 250 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	_, err = client.ListCategories(t.Context())
	require.ErrorIs(t, err, types.ErrDirectoryUnavailable)
}
