// Package versionstore reads and updates the current release version kept in
// a project's metadata files.
//
// A version lives either as a literal string supplied by the caller or at a
// property path inside one or more files. Nested documents (JSON, YAML, TOML)
// are decoded into a generic Value tree and walked segment by segment; flat
// key = "value" files are updated by replacing the quoted value in place.
package versionstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tagsmith/tagsmith/internal/semver"
)

// Location identifies where the current version comes from.
type Location struct {
	// Literal is set when the version is given directly; nothing is persisted.
	Literal string
	// Files are paths relative to the store root. The first file is the
	// source of truth; all of them are updated.
	Files []string
	// Path is the property path to the version inside each file.
	Path []string
}

// IsLiteral reports whether the location carries a literal version.
func (l Location) IsLiteral() bool {
	return l.Literal != ""
}

// ParseLocation interprets a configured version source. A source that is a
// valid X.Y.Z version is a literal; anything else is a comma-separated list
// of file paths.
func ParseLocation(source, dottedPath string) Location {
	source = strings.TrimSpace(source)
	if _, err := semver.Parse(source); err == nil {
		return Location{Literal: source}
	}

	var files []string
	for _, f := range strings.Split(source, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return Location{Files: files, Path: SplitPath(dottedPath)}
}

// Validate checks loc without touching disk: every file needs a known
// format and a file location needs a non-empty property path.
func (l Location) Validate() error {
	if l.IsLiteral() {
		return nil
	}
	for _, f := range l.Files {
		if _, err := ForFile(f); err != nil {
			return err
		}
	}
	if len(l.Files) > 0 && len(l.Path) == 0 {
		return &PathError{Message: "property path is empty"}
	}
	return nil
}

// Store resolves file locations relative to a root directory.
type Store struct {
	root       string
	createTemp func(dir, pattern string) (*os.File, error)
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir, createTemp: os.CreateTemp}
}

// Current returns the version at loc.
func (s *Store) Current(loc Location) (semver.Version, error) {
	raw, err := s.Read(loc)
	if err != nil {
		return semver.Version{}, err
	}
	v, err := semver.Parse(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("reading current version: %w", err)
	}
	return v, nil
}

// Read returns the raw version string at loc without parsing it.
func (s *Store) Read(loc Location) (string, error) {
	if loc.IsLiteral() {
		return loc.Literal, nil
	}
	if len(loc.Files) == 0 {
		return "", fmt.Errorf("no version source configured")
	}

	file := loc.Files[0]
	format, err := ForFile(file)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.resolve(file))
	if err != nil {
		return "", fmt.Errorf("reading version file: %w", err)
	}

	value, err := format.Read(data, loc.Path)
	if err != nil {
		return "", withFile(err, file)
	}
	return value, nil
}

// Change describes one version file rewrite.
type Change struct {
	File    string
	Changed bool
}

// Update writes v into every file of loc. All files are read and rewritten
// in memory first, then staged in temporary files next to their targets.
// Targets are replaced by rename only once every file is staged, so a
// format or write error leaves all of them untouched. Files whose bytes
// would not change are left alone.
func (s *Store) Update(loc Location, v semver.Version) ([]Change, error) {
	if loc.IsLiteral() {
		return nil, nil
	}

	type pending struct {
		path string
		data []byte
		mode os.FileMode
	}
	var writes []pending
	changes := make([]Change, 0, len(loc.Files))

	for _, file := range loc.Files {
		format, err := ForFile(file)
		if err != nil {
			return nil, err
		}
		path := s.resolve(file)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading version file: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading version file: %w", err)
		}

		out, err := format.Write(data, loc.Path, v.String())
		if err != nil {
			return nil, withFile(err, file)
		}

		changed := !bytes.Equal(out, data)
		changes = append(changes, Change{File: file, Changed: changed})
		if changed {
			writes = append(writes, pending{path: path, data: out, mode: info.Mode().Perm()})
		}
	}

	staged := make([]string, 0, len(writes))
	for _, w := range writes {
		tmp, err := s.stage(w.path, w.data, w.mode)
		if err != nil {
			removeAll(staged)
			return nil, fmt.Errorf("writing version file: %w", err)
		}
		staged = append(staged, tmp)
	}

	for i, w := range writes {
		if err := os.Rename(staged[i], w.path); err != nil {
			removeAll(staged[i:])
			return nil, fmt.Errorf("writing version file: %w", err)
		}
	}
	return changes, nil
}

// stage writes data to a temporary file in the directory of path and
// returns its name.
func (s *Store) stage(path string, data []byte, mode os.FileMode) (string, error) {
	f, err := s.createTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func removeAll(names []string) {
	for _, n := range names {
		os.Remove(n)
	}
}

func (s *Store) resolve(file string) string {
	if filepath.IsAbs(file) || s.root == "" {
		return file
	}
	return filepath.Join(s.root, file)
}

func withFile(err error, file string) error {
	if pe, ok := err.(*PathError); ok {
		cp := *pe
		cp.File = file
		return &cp
	}
	return fmt.Errorf("%s: %w", file, err)
}
