// Package settings persists the one value that survives between sessions:
// the feed URL.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/gofrs/flock"
)

// Settings is the on-disk document. FeedURL is stored under the fixed key
// "sheetUrl".
type Settings struct {
	FeedURL string `yaml:"sheetUrl"`
}

// File reads and writes a settings document guarded by a sibling lock file.
type File struct {
	path string
	lock *flock.Flock
}

// Open returns a File for path. Nothing is read until Load is called.
func Open(path string) *File {
	return &File{path: path, lock: flock.New(path + ".lock")}
}

// Load reads the settings. A missing file yields zero Settings.
func (f *File) Load() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid settings file %s: %w", f.path, err)
	}
	return s, nil
}

// Update applies fn to the stored settings and writes the result with mode
// 0600, creating the directory if needed. The read and the write happen under
// the file lock.
func (f *File) Update(fn func(*Settings)) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer f.lock.Unlock()

	s, err := f.Load()
	if err != nil {
		return err
	}
	fn(&s)
	return f.write(s)
}

func (f *File) write(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// FeedURL returns the persisted feed URL, or "" if none is stored.
func (f *File) FeedURL() (string, error) {
	s, err := f.Load()
	if err != nil {
		return "", err
	}
	return s.FeedURL, nil
}

// SetFeedURL persists url; an empty url clears it.
func (f *File) SetFeedURL(url string) error {
	return f.Update(func(s *Settings) { s.FeedURL = url })
}
