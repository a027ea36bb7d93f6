package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// prefFile is the on-disk layout of the preference file
type prefFile struct {
	Theme string `toml:"theme"`
}

// PrefStore persists the user's explicit theme choice
type PrefStore struct {
	path string
}

// NewPrefStore creates a store backed by the TOML file at path
func NewPrefStore(path string) *PrefStore {
	return &PrefStore{path: path}
}

// DefaultPrefPath returns the preference file under the user config directory
func DefaultPrefPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "netfield", "prefs.toml"), nil
}

// Path returns the preference file location
func (p *PrefStore) Path() string {
	return p.path
}

// Load returns the stored theme. ok is false when nothing has been stored.
func (p *PrefStore) Load() (t Theme, ok bool, err error) {
	var f prefFile
	if _, err := toml.DecodeFile(p.path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dark, false, nil
		}
		return Dark, false, fmt.Errorf("failed to read theme preference: %w", err)
	}
	if f.Theme == "" {
		return Dark, false, nil
	}
	t, err = Parse(f.Theme)
	if err != nil {
		return Dark, false, fmt.Errorf("invalid theme preference in %s: %w", p.path, err)
	}
	return t, true, nil
}

// Save stores t, replacing the file atomically
func (p *PrefStore) Save(t Theme) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create preference dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create preference file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(prefFile{Theme: t.String()}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode theme preference: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

// Clear removes the stored preference so the system preference applies again
func (p *PrefStore) Clear() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve picks the starting theme: an explicit stored choice wins over the
// system preference.
func Resolve(stored Theme, ok bool, systemDark bool) Theme {
	if ok {
		return stored
	}
	if systemDark {
		return Dark
	}
	return Light
}

// Persist saves every change of sig to store until the returned func is called
func Persist(sig *Signal, store *PrefStore, logger *log.Logger) (stop func()) {
	return sig.Subscribe(func(t Theme) {
		if err := store.Save(t); err != nil {
			logger.Warn("theme preference not saved", "err", err)
			return
		}
		logger.Debug("theme preference saved", "theme", t, "path", store.Path())
	})
}
