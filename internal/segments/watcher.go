// Package segments watches a session's recordings directory for completed
// chunk_NNNN.mkv files and, on each scan, hands the highest-indexed one off
// to an uploader, using a local watermark so no segment is handed off twice
// (C4). Lower-indexed segments that appear in the same scan are not
// handed off.
package segments

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/captureforge/engine/internal/logging"
)

var log = logging.L("segments")

// pollInterval is the scan cadence specified for the watcher.
const pollInterval = 5 * time.Second

var chunkPattern = regexp.MustCompile(`^chunk_(\d{4})\.mkv$`)

// Uploader receives the filename of a newly completed segment to upload.
type Uploader interface {
	Upload(fileName string)
}

// Watcher polls recordingsDir for completed segments and dispatches each
// to uploader at most once, advancing a local watermark.
type Watcher struct {
	RecordingsDir string
	Uploader      Uploader

	saved int
}

// Run rescans RecordingsDir every 5 seconds until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scanOnce()
		}
	}
}

// scanOnce performs a single rescan, uploading the highest-indexed
// completed segment if it is at or past the watermark.
func (w *Watcher) scanOnce() {
	entries, err := os.ReadDir(w.RecordingsDir)
	if err != nil {
		log.Warn("failed to scan recordings directory", logging.KeyError, err)
		return
	}

	nMax := -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := chunkPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if idx > nMax {
			nMax = idx
		}
	}

	if nMax < 0 || nMax < w.saved {
		return
	}

	fileName := chunkFileName(nMax)
	if _, err := os.Stat(filepath.Join(w.RecordingsDir, fileName)); err != nil {
		return
	}

	w.Uploader.Upload(fileName)
	w.saved = nMax + 1
}

func chunkFileName(idx int) string {
	s := strconv.Itoa(idx)
	for len(s) < 4 {
		s = "0" + s
	}
	return "chunk_" + s + ".mkv"
}
