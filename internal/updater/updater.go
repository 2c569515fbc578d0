// Package updater applies the priority rewrite to set files on disk.
package updater

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hpprio/internal/rewrite"
)

// ErrVerify is returned when a file that parsed as Lua before rewriting no
// longer parses afterwards. The file is left untouched.
var ErrVerify = errors.New("rewritten file no longer parses as Lua")

// Options controls how files are written back.
type Options struct {
	// DryRun computes results without writing anything.
	DryRun bool
	// VerifyLua re-parses rewritten output before writing.
	VerifyLua bool
	// BackupSuffix, when non-empty, copies the original to path+BackupSuffix
	// before it is replaced.
	BackupSuffix string
}

// FileResult reports the outcome for one file.
type FileResult struct {
	Path string
	rewrite.Result
	// Written is true when the file was replaced on disk.
	Written bool
	Elapsed time.Duration
}

// Summary aggregates a Run.
type Summary struct {
	Files       int
	Written     int
	Assignments int
	Changes     int
	Results     []FileResult
}

func (s *Summary) add(r FileResult) {
	s.Files++
	if r.Written {
		s.Written++
	}
	s.Assignments += r.Assignments
	s.Changes += r.Changes
	s.Results = append(s.Results, r)
}

// Updater rewrites set files with a Transformer.
type Updater struct {
	transformer *rewrite.Transformer
	opts        Options
	logger      *zap.Logger
}

// New constructs an Updater.
//
// Precondition: transformer and logger must be non-nil.
// Postcondition: returns a non-nil Updater.
func New(transformer *rewrite.Transformer, opts Options, logger *zap.Logger) *Updater {
	return &Updater{transformer: transformer, opts: opts, logger: logger}
}

// Run updates every path. A directory contributes its *.lua files in name
// order, without descending into subdirectories.
//
// Postcondition: every file is attempted; the returned error joins the
// per-file failures, and Summary covers the files that succeeded.
func (u *Updater) Run(paths ...string) (Summary, error) {
	overall := time.Now()

	files, err := expand(paths)
	if err != nil {
		return Summary{}, err
	}

	var (
		sum  Summary
		errs []error
	)
	for _, path := range files {
		r, err := u.UpdateFile(path)
		if err != nil {
			u.logger.Error("set file not updated", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		sum.add(r)
	}

	u.logger.Info("update complete",
		zap.Int("files", sum.Files),
		zap.Int("written", sum.Written),
		zap.Int("assignments", sum.Assignments),
		zap.Int("changes", sum.Changes),
		zap.Int("failed", len(errs)),
		zap.Bool("dry_run", u.opts.DryRun),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)
	return sum, errors.Join(errs...)
}

// UpdateFile rewrites one file in place.
//
// Precondition: path names a readable regular file.
// Postcondition: the file is replaced atomically only when its content
// changed and DryRun is off; on error it is untouched.
func (u *Updater) UpdateFile(path string) (FileResult, error) {
	t0 := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(data)

	res, err := u.transformer.Transform(src)
	if err != nil {
		return FileResult{}, fmt.Errorf("%s: %w", path, err)
	}
	fr := FileResult{Path: path, Result: res}

	if res.Output != src {
		if u.opts.VerifyLua && parses(src, path) && !parses(res.Output, path) {
			return FileResult{}, fmt.Errorf("%s: %w", path, ErrVerify)
		}
		if !u.opts.DryRun {
			if u.opts.BackupSuffix != "" {
				if err := os.WriteFile(path+u.opts.BackupSuffix, data, info.Mode().Perm()); err != nil {
					return FileResult{}, fmt.Errorf("writing backup of %s: %w", path, err)
				}
			}
			if err := writeAtomic(path, []byte(res.Output), info.Mode().Perm()); err != nil {
				return FileResult{}, err
			}
			fr.Written = true
		}
	}

	fr.Elapsed = time.Since(t0)
	u.logger.Info("processed set file",
		zap.String("path", path),
		zap.Int("assignments", res.Assignments),
		zap.Int("changes", res.Changes),
		zap.Bool("written", fr.Written),
		zap.Duration("elapsed", fr.Elapsed.Round(time.Millisecond)),
	)
	return fr, nil
}

func parses(src, name string) bool {
	_, err := parse.Parse(strings.NewReader(src), name)
	return err == nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting mode on temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", p, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(p, n))
		}
	}
	return files, nil
}
