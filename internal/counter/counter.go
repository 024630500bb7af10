// Package counter hands out per-directory sequential counters. The first
// query for a scope scans the directory for the highest existing counter;
// later queries are served from an in-process cache.
package counter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/name"
)

// Key identifies one counter series. Dir is absolute and cleaned; Prefix
// is empty when counting per directory instead of per prefix.
type Key struct {
	Dir      string
	Position name.Position
	Ext      string
	Prefix   string
}

// NewKey normalizes dir and builds the scope key. The prefix is dropped
// when perDirectory counting is on, so all prefixes in a directory share
// one series.
func NewKey(dir string, pos name.Position, ext, prefix string, perDirectory bool) (Key, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Key{}, fmt.Errorf("resolve counter directory: %w", err)
	}
	k := Key{Dir: filepath.Clean(abs), Position: pos, Ext: ext}
	if !perDirectory {
		k.Prefix = prefix
	}
	return k, nil
}

// Registry caches the next counter per scope key. One lock guards the
// whole cache so that scan-then-seed is atomic with respect to concurrent
// queries for the same key.
type Registry struct {
	mu   sync.Mutex
	next map[Key]int
}

func New() *Registry {
	return &Registry{next: make(map[Key]int)}
}

// Next returns the next counter for key and advances the series. An
// uncached key is seeded by scanning its directory first; a missing or
// unreadable directory seeds from zero, never fails.
func (r *Registry) Next(ctx context.Context, key Key, digits int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.next[key]; ok {
		r.next[key] = v + 1
		return v
	}

	n := scanMax(ctx, key, digits) + 1
	r.next[key] = n + 1
	return n
}

// Preload seeds the cache for key without consuming a counter. Already
// cached keys are left alone.
func (r *Registry) Preload(ctx context.Context, key Key, digits int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.next[key]; ok {
		return
	}
	r.next[key] = scanMax(ctx, key, digits) + 1
}

// Invalidate drops one cached series; the next query rescans.
func (r *Registry) Invalidate(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.next, key)
}

// InvalidateDir drops every cached series under dir, including
// subdirectories.
func (r *Registry) InvalidateDir(dir string) {
	norm := dir
	if abs, err := filepath.Abs(dir); err == nil {
		norm = abs
	}
	norm = filepath.Clean(norm)

	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.next {
		if k.Dir == norm || strings.HasPrefix(k.Dir, norm+string(filepath.Separator)) {
			delete(r.next, k)
		}
	}
}

// InvalidateAll empties the cache.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next = make(map[Key]int)
}

// Size reports the number of cached series.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.next)
}

// scanMax finds the highest counter among key.Dir's files. A missing
// directory is an empty one; any other read failure is logged and also
// treated as empty. Called with r.mu held.
func scanMax(ctx context.Context, key Key, digits int) int {
	entries, err := os.ReadDir(key.Dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger := log.FromContext(ctx)
			logger.Warn().Err(err).Str("dir", key.Dir).
				Msg("counter scan failed, seeding from zero")
		}
		return 0
	}

	re := pattern(key, digits)
	max := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// pattern builds the filename pattern for a scope. The counter is exactly
// digits wide and bounded by a literal "-" and the extension; when the
// key carries a prefix the pattern is anchored to it.
func pattern(key Key, digits int) *regexp.Regexp {
	var (
		ext    = regexp.QuoteMeta(key.Ext)
		count  = `(\d{` + strconv.Itoa(digits) + `})`
		prefix = regexp.QuoteMeta(key.Prefix)
	)

	switch {
	case key.Prefix == "" && key.Position == name.PositionFirst:
		return regexp.MustCompile(`^` + count + `-.*` + ext + `$`)
	case key.Prefix == "":
		return regexp.MustCompile(`^.*-` + count + ext + `$`)
	case key.Position == name.PositionFirst:
		return regexp.MustCompile(`^` + count + `-` + prefix + `.*` + ext + `$`)
	default:
		return regexp.MustCompile(`^` + prefix + `.*-` + count + ext + `$`)
	}
}
