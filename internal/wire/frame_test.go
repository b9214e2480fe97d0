package wire

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteFrame_RoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		require.NoError(t, WriteFrame(client, []string{"set", "KEY", "VALUE"}))
	}()

	frame, err := ReadFrame(server)
	require.NoError(t, err)
	assert.Equal(t, []string{"set", "KEY", "VALUE"}, frame)
}

func TestReadFrame_EmptyArray(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		require.NoError(t, WriteFrame(client, nil))
	}()

	frame, err := ReadFrame(server)
	require.NoError(t, err)
	assert.Empty(t, frame)
}

func TestReadFrame_MalformedJSON(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("not json"))
	}()

	_, err := ReadFrame(server)
	assert.Error(t, err)
}

func TestReadFrame_ClosedConnection(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	client.Close()

	_, err := ReadFrame(server)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriteFrame_DeadlineExceeded(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	require.NoError(t, client.SetWriteDeadline(time.Now().Add(-time.Second)))
	err := WriteFrame(client, []string{"stats"})
	assert.Error(t, err)
}
