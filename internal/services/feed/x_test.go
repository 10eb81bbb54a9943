package feed

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStreamLine(t *testing.T) {
	line := []byte(`{"data":{"id":"1523","author_id":"44196397","text":"doge to the moon"}}`)

	event, ok := parseStreamLine(line)
	require.True(t, ok)
	require.Equal(t, "1523", event.ID)
	require.Equal(t, "44196397", event.AuthorID)
	require.Equal(t, "doge to the moon", event.Text)
	require.False(t, event.IsReply)
}

func TestParseStreamLineReply(t *testing.T) {
	line := []byte(`{"data":{"id":"1524","author_id":"44196397","text":"yes","referenced_tweets":[{"type":"replied_to","id":"1500"}]}}`)

	event, ok := parseStreamLine(line)
	require.True(t, ok)
	require.True(t, event.IsReply)
}

func TestParseStreamLineQuoteIsNotReply(t *testing.T) {
	line := []byte(`{"data":{"id":"1525","author_id":"44196397","text":"look","referenced_tweets":[{"type":"quoted","id":"1500"}]}}`)

	event, ok := parseStreamLine(line)
	require.True(t, ok)
	require.False(t, event.IsReply)
}

func TestParseStreamLineSkips(t *testing.T) {
	for _, line := range [][]byte{
		nil,
		{},
		[]byte("\r"),
		[]byte(`{"errors":[{"title":"operational-disconnect"}]}`),
		[]byte(`not json`),
	} {
		_, ok := parseStreamLine(line)
		require.False(t, ok, "line %q", line)
	}
}
