package filelock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_SecondWaiterTimesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml.lock")

	unlock, err := Lock(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = Lock(ctx, path)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock())

	unlock2, err := Lock(context.Background(), path)
	require.NoError(t, err)
	assert.NoError(t, unlock2())
}

func TestDo(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.yml")

	ran := false
	err := Do(context.Background(), target, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.FileExists(t, target+Suffix)
}
