// Package producer contains frame producers that feed the gateway queue.
// Producers live outside the pipeline core: they only call TryEnqueue and
// never observe dispatch outcomes.
package producer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vigil-labs/framegate/internal/domain"
	"github.com/vigil-labs/framegate/internal/ports"
)

// settleDelay gives a writer time to finish the file before we read it.
// fsnotify reports creation, not completion.
const settleDelay = 50 * time.Millisecond

// imageExtensions lists the file types the spool ingests.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Spool watches a directory for dropped image files and enqueues each one
// as a frame job. Ingested files are removed (spool semantics). Files
// already present at startup are ingested first.
type Spool struct {
	dir    string
	queue  ports.FrameQueue
	logger ports.Logger
}

// NewSpool creates a spool producer for the given directory.
func NewSpool(dir string, queue ports.FrameQueue, logger ports.Logger) *Spool {
	return &Spool{
		dir:    dir,
		queue:  queue,
		logger: logger,
	}
}

// Run watches the spool directory until ctx is cancelled.
func (s *Spool) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}

	s.scan()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			time.Sleep(settleDelay)
			s.ingest(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("spool watch error", ports.Err(err))
		}
	}
}

// scan ingests files already present in the spool directory.
func (s *Spool) scan() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("spool scan failed", ports.Err(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s.ingest(filepath.Join(s.dir, e.Name()))
	}
}

// ingest reads one spool file, enqueues it, and removes it.
func (s *Spool) ingest(path string) {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		// The file may have been removed or may still be incomplete; the
		// next event for it will retry.
		s.logger.Debug("spool read failed", ports.String("path", path), ports.Err(err))
		return
	}
	if len(payload) == 0 {
		return
	}

	job := domain.NewFrameJob(payload, filepath.Base(path))
	if !s.queue.TryEnqueue(job) {
		s.logger.Warn("spool enqueue refused, queue closed", ports.String("path", path))
		return
	}

	if err := os.Remove(path); err != nil {
		s.logger.Error("spool remove failed", ports.String("path", path), ports.Err(err))
	}

	s.logger.Debug("spool frame admitted",
		ports.String("id", job.ID),
		ports.String("file", job.Source),
		ports.Int("bytes", len(job.Payload)),
	)
}
