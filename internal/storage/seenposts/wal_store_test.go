package seenposts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkAndSeen(t *testing.T) {
	j, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.False(t, j.Seen("1234"))

	require.NoError(t, j.Mark("1234"))
	require.True(t, j.Seen("1234"))

	// marking twice is fine
	require.NoError(t, j.Mark("1234"))
	require.True(t, j.Seen("1234"))

	require.False(t, j.Seen("5678"))
}

func TestMarkEmptyID(t *testing.T) {
	j, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.Error(t, j.Mark(""))
}

func TestReplayAfterReopen(t *testing.T) {
	dir := t.TempDir()

	j, err := NewJournal(dir)
	require.NoError(t, err)
	require.NoError(t, j.Mark("1111"))
	require.NoError(t, j.Mark("2222"))
	require.NoError(t, j.Close())

	reopened, err := NewJournal(dir)
	require.NoError(t, err)
	defer reopened.Close()

	require.True(t, reopened.Seen("1111"))
	require.True(t, reopened.Seen("2222"))
	require.False(t, reopened.Seen("3333"))
}
