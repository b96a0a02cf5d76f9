// Package filelock serializes writers of the config file across processes.
package filelock

import (
	"context"
	"os"
	"time"
)

const (
	lockFileMode  = 0o600
	retryInterval = 5 * time.Millisecond
)

// Suffix is appended to a guarded file's path to name its lock file.
const Suffix = ".lock"

// Lock acquires an exclusive advisory lock on the file at path, creating
// it if needed. It polls until the lock is free or ctx is done. The
// returned function releases the lock.
func Lock(ctx context.Context, path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
	if err != nil {
		return nil, err
	}

	for {
		ok, err := tryLock(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// Do runs fn while holding the lock guarding target.
func Do(ctx context.Context, target string, fn func() error) error {
	unlock, err := Lock(ctx, target+Suffix)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()
	return fn()
}
