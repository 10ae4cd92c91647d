package lock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nightlyone/lockfile"
	"github.com/rs/zerolog"
)

const file = "paperclip-watch.lck"

var (
	ErrCannotLock     = errors.New("cannot get locked process")
	ErrAlreadyRunning = errors.New("paperclip is already watching")
)

// Acquire takes the single-instance lock in dir.
func Acquire(dir string) (lockfile.Lockfile, error) {
	lock, err := lockfile.New(filepath.Join(dir, file))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCannotLock, err)
	}

	if lockErr := lock.TryLock(); lockErr != nil {
		owner, err := lock.GetOwner()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCannotLock, lockErr)
		}
		return "", fmt.Errorf("%w: pid %d", ErrAlreadyRunning, owner.Pid)
	}

	return lock, nil
}

// Hold takes the lock in dir and returns the function that releases it.
func Hold(dir string, logger zerolog.Logger) (func(), error) {
	lock, err := Acquire(dir)
	if err != nil {
		return nil, err
	}

	return func() {
		Unlock(lock, logger)
	}, nil
}

func Unlock(lock lockfile.Lockfile, l zerolog.Logger) {
	if err := lock.Unlock(); err != nil {
		l.Error().Err(err).Msg("cannot unlock process")
	}
}
