package filemonitor

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watch calls onChange with the path of every watched file that is
// written or replaced, until ctx is done. The parent directories are
// monitored so that editors replacing a file by rename are seen.
func Watch(ctx context.Context, logger logrus.FieldLogger, paths []string, onChange func(path string)) error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer notify.Close() // always returns nil for the error

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", p)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		// (non-recursive)
		if err := notify.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		dirs[dir] = true
		logger.Debugf("monitoring path '%v'", p)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("terminating watcher")
			return nil
		case event, ok := <-notify.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			logger.Debugf("watcher got event: %v", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				onChange(event.Name)
			}
		case err, ok := <-notify.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watcher got error: %v", err)
		}
	}
}
