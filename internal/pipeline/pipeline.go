// Package pipeline turns save events into named image files on disk.
//
// A Saver owns its collaborators explicitly: the counter registry, the
// encoder format, the job data exporter and the history recorder. Template
// problems never fail a save (unresolved tokens simply contribute nothing);
// only storage and encoding failures do.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/pix/internal/config"
	"github.com/raphi011/pix/internal/counter"
	"github.com/raphi011/pix/internal/encode"
	"github.com/raphi011/pix/internal/history"
	"github.com/raphi011/pix/internal/jobdata"
	"github.com/raphi011/pix/internal/log"
	"github.com/raphi011/pix/internal/name"
	"github.com/raphi011/pix/internal/outpath"
	"github.com/raphi011/pix/internal/params"
	"github.com/raphi011/pix/internal/template"
)

// Event is one batch of images saved under a single generated name.
type Event struct {
	// Inputs are image files to load and re-encode.
	Inputs []string
	// Images are already-decoded images, saved after Inputs.
	Images []image.Image
	// Tree is the parameter tree templates resolve against.
	Tree params.Value
	// Now is the timestamp for date tokens. Zero means time.Now().
	Now time.Time
	// Progress, when set, is called after each image is written with the
	// number of images written so far and the path just written.
	Progress func(done int, path string)
}

// Result reports what a save or preview produced.
type Result struct {
	// Dir is the directory the files were (or would be) written to.
	Dir string
	// Base is the generated base name, without counter or extension.
	Base string
	// Files are the written (or previewed) file paths.
	Files []string
	// Counters are the claimed counter values, aligned with Files.
	Counters []int
	// Unresolved lists template tokens that produced no value.
	Unresolved []string
}

// Saver runs the save pipeline for one configuration.
type Saver struct {
	cfg     config.Config
	baseDir string

	format encode.Format
	pos    name.Position

	counters *counter.Registry
	jobs     *jobdata.Exporter

	fileTokens   []template.Token
	folderTokens []template.Token
}

// New validates cfg and builds a Saver. Settings the pipeline depends on
// (format, counter position and digits, job data mode) are rejected here
// even though `pix validate` reports them too.
func New(cfg config.Config) (*Saver, error) {
	format, ok := encode.ByExt(cfg.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q, supported: %s", cfg.Format, strings.Join(encode.Exts(), ", "))
	}
	pos, err := name.ParsePosition(cfg.CounterPosition)
	if err != nil {
		return nil, err
	}
	mode, err := jobdata.ParseMode(cfg.JobData)
	if err != nil {
		return nil, err
	}
	if cfg.CounterDigits < 1 || cfg.CounterDigits > 8 {
		return nil, fmt.Errorf("counter digits must be between 1 and 8, got %d", cfg.CounterDigits)
	}
	baseDir, err := config.NormalizeOutputDir(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}

	return &Saver{
		cfg:          cfg,
		baseDir:      baseDir,
		format:       format,
		pos:          pos,
		counters:     counter.New(),
		jobs:         jobdata.NewExporter(mode),
		fileTokens:   template.ParseList(cfg.FilenameTemplate),
		folderTokens: template.ParseList(cfg.FoldernameTemplate),
	}, nil
}

// BaseDir returns the absolute base output directory.
func (s *Saver) BaseDir() string {
	return s.baseDir
}

// Save names and writes every image in ev. Partial results are returned
// alongside the error when an image cannot be read or written.
func (s *Saver) Save(ctx context.Context, ev Event) (Result, error) {
	logger := log.FromContext(ctx)
	now := eventTime(ev)

	fileRes := template.Resolve(s.fileTokens, ev.Tree, now)
	folderRes := template.Resolve(s.folderTokens, ev.Tree, now)

	dir, leaf, err := s.place(ctx, fileRes, folderRes)
	if err != nil {
		return Result{}, err
	}
	dir, err = s.ensureDir(ctx, dir)
	if err != nil {
		return Result{}, err
	}

	key, err := counter.NewKey(dir, s.pos, s.format.Ext, leaf, s.cfg.PerDirectoryCounter)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Dir:        dir,
		Base:       leaf,
		Unresolved: unresolvedTokens(fileRes, folderRes),
	}

	save := func(img image.Image) error {
		n := s.counters.Next(ctx, key, s.cfg.CounterDigits)
		fname := name.Filename(leaf, n, s.cfg.CounterDigits, s.pos, s.cfg.Delimiter, s.format.Ext)
		path := filepath.Join(dir, fname)

		if err := encode.Save(path, img, s.format, s.cfg.Quality); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
		res.Counters = append(res.Counters, n)
		logger.Debug().Str("file", path).Msg("saved image")
		if ev.Progress != nil {
			ev.Progress(len(res.Files), path)
		}
		return nil
	}

	for _, p := range ev.Inputs {
		img, err := encode.Open(p)
		if err != nil {
			return res, err
		}
		if err := save(img); err != nil {
			return res, err
		}
	}
	for _, img := range ev.Images {
		if err := save(img); err != nil {
			return res, err
		}
	}

	if len(res.Files) > 0 {
		s.export(ctx, now, res, fileRes, folderRes)
		s.recordHistory(ctx, res)
	}
	return res, nil
}

// Preview resolves names without touching the filesystem. No counter is
// claimed; the example filename uses counter 1. Unresolved non-marker
// tokens render as visible "[token]" placeholders instead of being
// omitted.
func (s *Saver) Preview(ctx context.Context, ev Event) (Result, error) {
	now := eventTime(ev)

	fileRes := template.Resolve(s.fileTokens, ev.Tree, now)
	folderRes := template.Resolve(s.folderTokens, ev.Tree, now)
	unresolved := unresolvedTokens(fileRes, folderRes)

	dir, leaf, err := s.place(ctx, placeholders(fileRes), placeholders(folderRes))
	if err != nil {
		return Result{}, err
	}

	fname := name.Filename(leaf, 1, s.cfg.CounterDigits, s.pos, s.cfg.Delimiter, s.format.Ext)

	return Result{
		Dir:        dir,
		Base:       leaf,
		Files:      []string{filepath.Join(dir, fname)},
		Counters:   []int{1},
		Unresolved: unresolved,
	}, nil
}

// place builds the output directory and base name for one event. It does
// not touch the filesystem; Save calls ensureDir afterwards, Preview does
// not.
func (s *Saver) place(ctx context.Context, fileRes, folderRes []template.Resolved) (dir, leaf string, err error) {
	base := name.Base(fileRes, s.cfg.Prefix, s.cfg.Delimiter)
	folderSpec := name.Folder(folderRes, s.cfg.Delimiter)

	// Path markers (and resolved values carrying path separators) in the
	// filename template become subdirectories; the leaf seeds the counter
	// prefix. Folding them into the folder spec keeps every generated
	// path behind the same escape check.
	subdir, leaf := splitBase(base)
	if subdir != "" {
		if folderSpec == "" {
			folderSpec = subdir
		} else {
			folderSpec += "/" + subdir
		}
	}

	dir, err = outpath.Resolve(s.baseDir, folderSpec)
	if err != nil {
		if !errors.Is(err, outpath.ErrEscapesBase) {
			return "", "", err
		}
		logger := log.FromContext(ctx)
		logger.Warn().Str("folder", folderSpec).Msg("folder template escapes the output directory, using the base")
	}
	return dir, leaf, nil
}

// ensureDir creates dir, degrading to the base output directory when the
// subfolder cannot be created. Failure to create the base itself is fatal.
func (s *Saver) ensureDir(ctx context.Context, dir string) (string, error) {
	if err := outpath.Ensure(dir); err != nil {
		if dir == s.baseDir {
			return "", err
		}
		logger := log.FromContext(ctx)
		logger.Warn().Err(err).Str("dir", dir).Msg("cannot create output folder, using the base directory")
		dir = s.baseDir
		if err := outpath.Ensure(dir); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// PreloadCounters warms the counter cache for dirs. Only meaningful in
// per-directory mode, where the scope key does not depend on the
// generated base name.
func (s *Saver) PreloadCounters(ctx context.Context, dirs ...string) {
	if !s.cfg.PerDirectoryCounter {
		return
	}
	for _, d := range dirs {
		key, err := counter.NewKey(d, s.pos, s.format.Ext, "", true)
		if err != nil {
			logger := log.FromContext(ctx)
			logger.Warn().Err(err).Str("dir", d).Msg("cannot preload counter")
			continue
		}
		s.counters.Preload(ctx, key, s.cfg.CounterDigits)
	}
}

func (s *Saver) export(ctx context.Context, now time.Time, res Result, fileRes, folderRes []template.Resolved) {
	rec := jobdata.Record{
		CreatedAt: now,
		Folder:    res.Dir,
		BaseName:  res.Base,
		Prefix:    s.cfg.Prefix,
		Files:     baseNames(res.Files),
		Counters:  res.Counters,
		Values:    resolvedValues(fileRes, folderRes),
	}
	if err := s.jobs.Append(ctx, rec); err != nil {
		logger := log.FromContext(ctx)
		logger.Warn().Err(err).Str("dir", res.Dir).Msg("job data export failed")
	}
}

func (s *Saver) recordHistory(ctx context.Context, res Result) {
	if !s.cfg.History {
		return
	}
	path, err := history.DefaultPath()
	if err == nil {
		err = history.Record(ctx, path, res.Dir, baseNames(res.Files)...)
	}
	if err != nil {
		logger := log.FromContext(ctx)
		logger.Warn().Err(err).Msg("history recording failed")
	}
}

func eventTime(ev Event) time.Time {
	if ev.Now.IsZero() {
		return time.Now()
	}
	return ev.Now
}

// splitBase separates the subdirectory part a path marker contributed
// from the final name part.
func splitBase(base string) (subdir, leaf string) {
	if i := strings.LastIndex(base, "/"); i >= 0 {
		return base[:i], base[i+1:]
	}
	return "", base
}

// placeholders rewrites unresolved entries to visible "[token]" values so
// preview shows what generation would silently omit.
func placeholders(resolved []template.Resolved) []template.Resolved {
	out := make([]template.Resolved, len(resolved))
	for i, r := range resolved {
		if !r.OK {
			r.Value = "[" + r.Token.Raw + "]"
			r.OK = true
		}
		out[i] = r
	}
	return out
}

func unresolvedTokens(lists ...[]template.Resolved) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, r := range list {
			if r.OK || seen[r.Token.Raw] {
				continue
			}
			seen[r.Token.Raw] = true
			out = append(out, r.Token.Raw)
		}
	}
	return out
}

// resolvedValues collects the parameter values that went into the name,
// for full job data records. Date tokens and markers carry no parameter.
func resolvedValues(lists ...[]template.Resolved) map[string]string {
	values := make(map[string]string)
	for _, list := range lists {
		for _, r := range list {
			if !r.OK {
				continue
			}
			if r.Token.Kind != template.KindLiteral && r.Token.Kind != template.KindNodeRef {
				continue
			}
			values[r.Token.Raw] = r.Value
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
