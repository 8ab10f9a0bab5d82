package ingest

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent reports one file handled by Watch.
type WatchEvent struct {
	Path    string
	Chunks  int
	Removed bool
	Err     error
}

// Watch monitors a reference folder and re-ingests supported files as
// they are created or modified; removed files are dropped from the
// index. Events are reported on the returned channel, which closes when
// ctx is cancelled.
func (ing *Ingestor) Watch(ctx context.Context, folder string) (<-chan WatchEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(folder); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", folder, err)
	}

	events := make(chan WatchEvent, 16)

	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !Supported(event.Name) {
					continue
				}

				var we WatchEvent
				switch {
				case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
					n, err := ing.IngestFile(event.Name)
					we = WatchEvent{Path: event.Name, Chunks: n, Err: err}
				case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
					err := ing.idx.RemoveFile(event.Name)
					we = WatchEvent{Path: event.Name, Removed: true, Err: err}
				default:
					continue
				}

				select {
				case events <- we:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case events <- WatchEvent{Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}
