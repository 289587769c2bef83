package main

import (
	"context"
	"fmt"
	"hash/crc32"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DocUploader is the slice of the document store the registry drives.
type DocUploader interface {
	Upload(name string, contentType string, data []byte) (string, error)
	Remove(id string) error
}

type trackedDoc struct {
	id  string
	crc uint32
}

// DocRegistry mirrors a directory of source documents into the store: new
// files are uploaded, changed files are removed and re-uploaded under a new
// id, and deleted files are forgotten. The registry is driven from a single
// goroutine (initial Sync, then Watch).
type DocRegistry struct {
	log              *slog.Logger
	root             string
	store            DocUploader
	mergeEventsDelay time.Duration

	tracked map[string]trackedDoc
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".odt":  "application/vnd.oasis.opendocument.text",
	".xml":  "text/xml",
}

func (dr *DocRegistry) Sync(ctx context.Context) error {
	if dr.tracked == nil {
		dr.tracked = make(map[string]trackedDoc)
	}

	seen := make(map[string]bool)
	err := filepath.Walk(dr.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		contentType, ok := contentTypes[filepath.Ext(path)]
		if !ok {
			dr.log.Warn("unsupported file", "path", path)
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		seen[path] = true
		crc := crc32.Checksum(data, crc32.IEEETable)

		prev, tracked := dr.tracked[path]
		if tracked && prev.crc == crc {
			return nil
		}
		if tracked {
			if err := dr.store.Remove(prev.id); err != nil {
				return fmt.Errorf("removing stale document %s: %w", path, err)
			}
		}

		id, err := dr.store.Upload(filepath.Base(path), contentType, data)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", path, err)
		}
		dr.tracked[path] = trackedDoc{id: id, crc: crc}

		return nil
	})
	if err != nil {
		return err
	}

	for path, doc := range dr.tracked {
		if seen[path] {
			continue
		}
		if err := dr.store.Remove(doc.id); err != nil {
			return fmt.Errorf("forgetting removed document %s: %w", path, err)
		}
		delete(dr.tracked, path)
	}

	return nil
}

// Watch re-syncs the directory after filesystem events, merging bursts of
// events into a single sync per debounce window.
func (dr *DocRegistry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dr.root); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dr.root, err)
	}

	go func() {
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(dr.mergeEventsDelay)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				dr.log.Error("watch error", "err", err)
			case <-pending:
				pending = nil
				if err := dr.Sync(ctx); err != nil {
					dr.log.Error("sync failed", "err", err)
				}
			}
		}
	}()

	return nil
}
