// Package jobdata exports sidecar JSON records of completed saves.
//
// Each output directory carries its own jobs.json describing the batches
// written into it, so provenance travels with the images without touching
// the image files themselves.
package jobdata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/storage"
)

// FileName is the sidecar file written into each output directory.
const FileName = "jobs.json"

// maxRecords bounds the sidecar; the oldest records are dropped first.
const maxRecords = 500

// Mode controls how much of a save event is exported.
type Mode string

const (
	// ModeOff disables job data export.
	ModeOff Mode = "off"
	// ModeBasic records what was written and where.
	ModeBasic Mode = "basic"
	// ModeFull additionally records the resolved template values.
	ModeFull Mode = "full"
)

// Modes lists the valid export modes.
func Modes() []Mode {
	return []Mode{ModeOff, ModeBasic, ModeFull}
}

// ParseMode validates a job_data config value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOff, ModeBasic, ModeFull:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid job data mode %q, must be %q, %q or %q", s, ModeOff, ModeBasic, ModeFull)
}

// Record describes one completed save.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Folder    string    `json:"folder"`
	BaseName  string    `json:"base_name"`
	Prefix    string    `json:"prefix,omitempty"`
	Files     []string  `json:"files"`
	Counters  []int     `json:"counters"`

	// Values holds the resolved template tokens. Full mode only.
	Values map[string]string `json:"values,omitempty"`
}

// jobsFile is the on-disk shape of jobs.json.
type jobsFile struct {
	Records []Record `json:"records"`
}

// Exporter appends save records to per-directory sidecar files.
type Exporter struct {
	mode Mode
}

// NewExporter returns an exporter for the given mode.
func NewExporter(mode Mode) *Exporter {
	return &Exporter{mode: mode}
}

// Mode reports the configured export mode.
func (e *Exporter) Mode() Mode { return e.mode }

// Append writes rec to the jobs.json in rec.Folder. Basic mode strips the
// resolved values first; off mode writes nothing. Concurrent pix processes
// serialize on a lock file next to the sidecar, and an unreadable sidecar
// is replaced rather than blocking the save.
func (e *Exporter) Append(ctx context.Context, rec Record) error {
	if e.mode == ModeOff {
		return nil
	}
	if e.mode == ModeBasic {
		rec.Values = nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	path := filepath.Join(rec.Folder, FileName)

	return storage.WithLock(path+".lock", func() error {
		var f jobsFile
		if err := storage.LoadJSON(path, &f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger := log.FromContext(ctx)
			logger.Warn().Err(err).Str("path", path).Msg("job data file unreadable, starting fresh")
			f = jobsFile{}
		}

		f.Records = append(f.Records, rec)
		if len(f.Records) > maxRecords {
			f.Records = f.Records[len(f.Records)-maxRecords:]
		}

		return storage.SaveJSON(path, &f)
	})
}
