// Package history tracks the most recently saved images.
// This backs `pix history` and the `--copy-last` clipboard shortcut.
package history

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/storage"
)

// maxEntries caps the history; the oldest entries are evicted first.
const maxEntries = 50

// Entry is one saved image.
type Entry struct {
	Dir     string    `json:"dir"`
	File    string    `json:"file"`
	SavedAt time.Time `json:"saved_at"`
}

// History holds recent save entries, oldest first.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns the path to ~/.pix/history.json.
func DefaultPath() (string, error) {
	dir, err := storage.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// Load reads the history from path. A missing file is an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Latest returns the most recently recorded entry.
func (h *History) Latest() (Entry, bool) {
	if len(h.Entries) == 0 {
		return Entry{}, false
	}
	return h.Entries[len(h.Entries)-1], true
}

// Record appends one entry per saved file, evicting the oldest entries
// beyond the cap. Concurrent pix processes serialize on a lock file, and
// an unreadable history file is replaced rather than blocking the save.
func Record(ctx context.Context, path, dir string, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	now := time.Now()

	return storage.WithLock(path+".lock", func() error {
		h, err := Load(path)
		if err != nil {
			logger := log.FromContext(ctx)
			logger.Warn().Err(err).Str("path", path).Msg("history file unreadable, starting fresh")
			h = &History{}
		}

		for _, f := range files {
			h.Entries = append(h.Entries, Entry{Dir: dir, File: f, SavedAt: now})
		}
		if len(h.Entries) > maxEntries {
			h.Entries = h.Entries[len(h.Entries)-maxEntries:]
		}

		return h.Save(path)
	})
}

// Clear removes the history file. A missing file is not an error.
func Clear(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
